// Package service reconciles authority identifiers against the registry
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sikt-no/authority-registry-api/internal/authority"
)

var (
	// ErrInvalidInput is returned when a required value is missing or malformed.
	// No registry call is made in that case.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateIdentifier is returned when an identifier to add is already on the record
	ErrDuplicateIdentifier = errors.New("identifier already present")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go AuthorityService

// AuthorityService defines the operations offered on authority records
type AuthorityService interface {
	// GetAuthority returns the authority with the given system control number
	GetAuthority(ctx context.Context, scn string) (*authority.View, error)

	// SearchAuthorities returns the authorities matching a name or an identifier
	SearchAuthorities(ctx context.Context, opts ...Option[SearchOptions]) ([]authority.View, error)

	// CreateAuthority creates a person authority from a name in "Last, First" form
	CreateAuthority(ctx context.Context, invertedName string) (*authority.View, error)

	// AddIdentifier adds an identifier unless the record already has it
	AddIdentifier(ctx context.Context, scn, qualifier, value string) (*authority.View, error)

	// UpdateIdentifier replaces oldValue with newValue. The change is not atomic; the returned
	// view is the state of the record after both steps ran.
	UpdateIdentifier(ctx context.Context, scn, qualifier, oldValue, newValue string) (*authority.View, error)

	// DeleteIdentifier removes an identifier from the record
	DeleteIdentifier(ctx context.Context, scn, qualifier, value string) (*authority.View, error)
}

// Option is a function that sets an option for a service operation
type Option[T SearchOptions] func(*T) error

// SearchOptions is the options for the SearchAuthorities operation.
// Exactly one of Name and Qualifier must be set.
type SearchOptions struct {
	Name       string
	Qualifier  authority.Qualifier
	Identifier string
}

// WithName searches by personal name
func WithName(name string) Option[SearchOptions] {
	return func(o *SearchOptions) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid name: %q", name)
		}
		o.Name = name
		return nil
	}
}

// WithIdentifier searches by an identifier in the namespace of the given qualifier
func WithIdentifier(qualifier, value string) Option[SearchOptions] {
	return func(o *SearchOptions) error {
		q, err := authority.ParseQualifier(qualifier)
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid %s: %q", qualifier, value)
		}
		o.Qualifier = q
		o.Identifier = value
		return nil
	}
}

func (o *SearchOptions) validate() error {
	hasName := o.Name != ""
	hasIdentifier := o.Qualifier != ""
	switch {
	case hasName && hasIdentifier:
		return errors.New("search by name and identifier at the same time is not supported")
	case !hasName && !hasIdentifier:
		return errors.New("a name or an identifier is required")
	}
	return nil
}
