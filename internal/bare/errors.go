package bare

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryRejected is matched by errors for mutations the registry answered with a non-success status
	ErrRegistryRejected = errors.New("registry rejected request")

	// ErrCommunicationFailure is matched by errors for transport failures, timeouts,
	// unexpected lookup statuses and unusable response bodies
	ErrCommunicationFailure = errors.New("communication failure with registry")

	// ErrInvalidDraft is returned by Create when no draft record is given. No request is sent.
	ErrInvalidDraft = errors.New("draft record is required")
)

// RegistryError describes a failed registry call
type RegistryError struct {
	// Op is the protocol operation that failed (lookup, create, ...)
	Op string

	// StatusCode is the HTTP status returned by the registry, 0 if no response was received
	StatusCode int

	// Detail is a human-readable description, usually the registry response body
	Detail string

	kind error
	err  error
}

// Error returns the error message
func (e *RegistryError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Is reports whether target is the kind of this error
func (e *RegistryError) Is(target error) bool {
	return target == e.kind
}

// Unwrap returns the underlying cause
func (e *RegistryError) Unwrap() error {
	return e.err
}

// NewRejected creates a rejection for the given operation carrying the registry response body
func NewRejected(op string, statusCode int, body string) error {
	return &RegistryError{Op: op, StatusCode: statusCode, Detail: body, kind: ErrRegistryRejected}
}

// NewCommunicationFailure creates a communication failure for the given operation
func NewCommunicationFailure(op string, statusCode int, detail string, cause error) error {
	return &RegistryError{Op: op, StatusCode: statusCode, Detail: detail, kind: ErrCommunicationFailure, err: cause}
}

// StatusCode returns the registry status code carried by err, or 0
func StatusCode(err error) int {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
