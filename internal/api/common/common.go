// Package common provides shared HTTP utility functions for API handlers.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxRequestBodySize caps the JSON bodies accepted by the API
const MaxRequestBodySize = 64 * 1024

// ErrorResponse is the body of every error returned by the API
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONResponse writes data as JSON with the given status code
func WriteJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// WriteErrorResponse writes a standardized error response
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, ErrorResponse{Error: message}, statusCode)
}

// DecodeJSONBody decodes the request body into dst. An empty body, malformed JSON and
// trailing data are all errors.
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodySize))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: unexpected data after JSON object")
	}
	return nil
}
