// Package app wires the authority API together and manages its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sikt-no/authority-registry-api/internal/config"
)

// AuthorityApp holds everything needed to run the authority API server
type AuthorityApp struct {
	config     *config.Config
	components *AppComponents
	httpServer *http.Server
}

// Start serves HTTP until the server is stopped or fails
func (app *AuthorityApp) Start() error {
	slog.Info("Server listening", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests, waiting at most timeout
func (app *AuthorityApp) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *AuthorityApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server
func (app *AuthorityApp) GetHTTPServer() *http.Server {
	return app.httpServer
}

// Components returns the assembled components
func (app *AuthorityApp) Components() *AppComponents {
	return app.components
}
