package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sikt-no/authority-registry-api/internal/api/common"
	"github.com/sikt-no/authority-registry-api/internal/versions"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// HealthRouter creates a router for the health and version endpoints
func HealthRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests. It does not contact the registry.
//
// @Summary		Health check
// @Tags			system
// @Produce		json
// @Success		200	{object}	HealthResponse
// @Router			/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

// versionHandler handles version information requests
//
// @Summary		Version information
// @Tags			system
// @Produce		json
// @Success		200	{object}	versions.VersionInfo
// @Router			/version [get]
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, versions.GetVersionInfo(), http.StatusOK)
}
