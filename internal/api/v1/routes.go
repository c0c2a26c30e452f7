// Package v1 provides the person authority endpoints.
package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sikt-no/authority-registry-api/internal/api/common"
	"github.com/sikt-no/authority-registry-api/internal/authority"
	"github.com/sikt-no/authority-registry-api/internal/bare"
	"github.com/sikt-no/authority-registry-api/internal/service"
)

const searchByName = "name"

// CreateAuthorityRequest is the body of a create request
type CreateAuthorityRequest struct {
	InvertedName string `json:"invertedname"`
}

// IdentifierRequest is the body of add and delete requests
type IdentifierRequest struct {
	Identifier string `json:"identifier"`
}

// UpdateIdentifierRequest is the body of an update request
type UpdateIdentifierRequest struct {
	Identifier        string `json:"identifier"`
	UpdatedIdentifier string `json:"updatedIdentifier"`
}

// Routes handles HTTP requests for person authorities.
type Routes struct {
	service service.AuthorityService
}

// NewRoutes creates a new Routes instance with the given service.
func NewRoutes(svc service.AuthorityService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates and configures the HTTP router for person authorities.
func Router(svc service.AuthorityService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Get("/", routes.searchAuthorities)
	r.Post("/", routes.createAuthority)
	r.Route("/{scn}", func(r chi.Router) {
		r.Get("/", routes.getAuthority)
		r.Route("/identifiers/{qualifier}", func(r chi.Router) {
			r.Post("/add", routes.addIdentifier)
			r.Put("/update", routes.updateIdentifier)
			r.Delete("/delete", routes.deleteIdentifier)
		})
	})

	return r
}

// searchAuthorities handles GET /persons
//
// @Summary		Search person authorities
// @Description	Search by name or by exactly one identifier
// @Tags			persons
// @Produce		json
// @Param			name		query		string	false	"Name in any form accepted by the registry"
// @Param			feideid		query		string	false	"Feide id"
// @Param			orcid		query		string	false	"ORCID"
// @Param			orgunitid	query		string	false	"Organisation unit id"
// @Success		200			{array}		authority.View
// @Failure		400			{object}	common.ErrorResponse
// @Failure		500			{object}	common.ErrorResponse
// @Router			/persons [get]
func (routes *Routes) searchAuthorities(w http.ResponseWriter, r *http.Request) {
	names := []string{searchByName}
	for _, q := range authority.Qualifiers() {
		names = append(names, q.String())
	}

	param, value, err := common.SingleQueryParam(r, names...)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	opt := service.WithName(value)
	if param != searchByName {
		opt = service.WithIdentifier(param, value)
	}

	views, err := routes.service.SearchAuthorities(r.Context(), opt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, views, http.StatusOK)
}

// getAuthority handles GET /persons/{scn}
//
// @Summary		Get person authority
// @Tags			persons
// @Produce		json
// @Param			scn	path		string	true	"System control number"
// @Success		200	{object}	authority.View
// @Failure		400	{object}	common.ErrorResponse
// @Failure		500	{object}	common.ErrorResponse
// @Router			/persons/{scn} [get]
func (routes *Routes) getAuthority(w http.ResponseWriter, r *http.Request) {
	scn, err := common.GetAndValidateURLParam(r, "scn")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := routes.service.GetAuthority(r.Context(), scn)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, view, http.StatusOK)
}

// createAuthority handles POST /persons
//
// @Summary		Create person authority
// @Tags			persons
// @Accept			json
// @Produce		json
// @Param			body	body		CreateAuthorityRequest	true	"Name in \"Last, First\" form"
// @Success		200		{object}	authority.View
// @Failure		400		{object}	common.ErrorResponse
// @Failure		502		{object}	common.ErrorResponse
// @Failure		500		{object}	common.ErrorResponse
// @Router			/persons [post]
func (routes *Routes) createAuthority(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorityRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.InvertedName) == "" {
		common.WriteErrorResponse(w, "invertedname is required", http.StatusBadRequest)
		return
	}
	if !strings.Contains(req.InvertedName, ",") {
		common.WriteErrorResponse(w, "invertedname must be in \"Last, First\" form", http.StatusBadRequest)
		return
	}

	view, err := routes.service.CreateAuthority(r.Context(), req.InvertedName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, view, http.StatusOK)
}

// addIdentifier handles POST /persons/{scn}/identifiers/{qualifier}/add
//
// @Summary		Add identifier
// @Tags			persons
// @Accept			json
// @Produce		json
// @Param			scn			path		string				true	"System control number"
// @Param			qualifier	path		string				true	"feideid, orcid or orgunitid"
// @Param			body		body		IdentifierRequest	true	"Identifier to add"
// @Success		200			{object}	authority.View
// @Failure		400			{object}	common.ErrorResponse
// @Failure		409			{object}	common.ErrorResponse
// @Failure		502			{object}	common.ErrorResponse
// @Failure		500			{object}	common.ErrorResponse
// @Router			/persons/{scn}/identifiers/{qualifier}/add [post]
func (routes *Routes) addIdentifier(w http.ResponseWriter, r *http.Request) {
	scn, qualifier, ok := identifierPathParams(w, r)
	if !ok {
		return
	}

	var req IdentifierRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := routes.service.AddIdentifier(r.Context(), scn, qualifier, req.Identifier)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, view, http.StatusOK)
}

// updateIdentifier handles PUT /persons/{scn}/identifiers/{qualifier}/update
//
// @Summary		Replace identifier
// @Description	Deletes the old identifier and adds the new one. The two steps are not atomic.
// @Tags			persons
// @Accept			json
// @Produce		json
// @Param			scn			path		string					true	"System control number"
// @Param			qualifier	path		string					true	"feideid, orcid or orgunitid"
// @Param			body		body		UpdateIdentifierRequest	true	"Old and new identifier"
// @Success		200			{object}	authority.View
// @Failure		400			{object}	common.ErrorResponse
// @Failure		502			{object}	common.ErrorResponse
// @Failure		500			{object}	common.ErrorResponse
// @Router			/persons/{scn}/identifiers/{qualifier}/update [put]
func (routes *Routes) updateIdentifier(w http.ResponseWriter, r *http.Request) {
	scn, qualifier, ok := identifierPathParams(w, r)
	if !ok {
		return
	}

	var req UpdateIdentifierRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := routes.service.UpdateIdentifier(r.Context(), scn, qualifier, req.Identifier, req.UpdatedIdentifier)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, view, http.StatusOK)
}

// deleteIdentifier handles DELETE /persons/{scn}/identifiers/{qualifier}/delete
//
// @Summary		Delete identifier
// @Tags			persons
// @Accept			json
// @Produce		json
// @Param			scn			path		string				true	"System control number"
// @Param			qualifier	path		string				true	"feideid, orcid or orgunitid"
// @Param			body		body		IdentifierRequest	true	"Identifier to delete"
// @Success		200			{object}	authority.View
// @Failure		400			{object}	common.ErrorResponse
// @Failure		502			{object}	common.ErrorResponse
// @Failure		500			{object}	common.ErrorResponse
// @Router			/persons/{scn}/identifiers/{qualifier}/delete [delete]
func (routes *Routes) deleteIdentifier(w http.ResponseWriter, r *http.Request) {
	scn, qualifier, ok := identifierPathParams(w, r)
	if !ok {
		return
	}

	var req IdentifierRequest
	if err := common.DecodeJSONBody(r, &req); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := routes.service.DeleteIdentifier(r.Context(), scn, qualifier, req.Identifier)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	common.WriteJSONResponse(w, view, http.StatusOK)
}

// identifierPathParams reads scn and qualifier, writing a 400 response when either is invalid
func identifierPathParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	scn, err := common.GetAndValidateURLParam(r, "scn")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	qualifier, err := common.GetAndValidateURLParam(r, "qualifier")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	if _, err := authority.ParseQualifier(qualifier); err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	return scn, qualifier, true
}

// StatusForError maps a service error to the HTTP status returned to the caller
func StatusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateIdentifier):
		return http.StatusConflict
	case errors.Is(err, bare.ErrRegistryRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Authority operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"registry_status", bare.StatusCode(err),
			"error", err,
		)
	}
	common.WriteErrorResponse(w, err.Error(), status)
}
