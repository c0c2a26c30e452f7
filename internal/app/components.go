package app

import (
	"github.com/sikt-no/authority-registry-api/internal/bare"
	"github.com/sikt-no/authority-registry-api/internal/service"
)

// AppComponents groups the application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// RegistryClient talks to the authority registry
	RegistryClient bare.RegistryClient

	// AuthorityService reconciles person authorities
	AuthorityService service.AuthorityService
}
