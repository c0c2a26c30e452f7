package bare

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantKind   error
		notKind    error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "rejection carries status and body",
			err:        NewRejected(OpAddIdentifier, 409, "already exists"),
			wantKind:   ErrRegistryRejected,
			notKind:    ErrCommunicationFailure,
			wantStatus: 409,
			wantMsg:    "add identifier: registry rejected request (HTTP 409): already exists",
		},
		{
			name:       "communication failure with cause",
			err:        NewCommunicationFailure(OpLookup, 0, "", errors.New("dial tcp: connection refused")),
			wantKind:   ErrCommunicationFailure,
			notKind:    ErrRegistryRejected,
			wantStatus: 0,
			wantMsg:    "lookup: communication failure with registry: dial tcp: connection refused",
		},
		{
			name:       "wrapped error keeps its kind",
			err:        fmt.Errorf("fetching: %w", NewCommunicationFailure(OpCreate, 201, emptyResponseDetail, nil)),
			wantKind:   ErrCommunicationFailure,
			notKind:    ErrRegistryRejected,
			wantStatus: 201,
			wantMsg:    "fetching: create: communication failure with registry (HTTP 201): empty response from server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, tt.err, tt.wantKind)
			assert.NotErrorIs(t, tt.err, tt.notKind)
			assert.Equal(t, tt.wantStatus, StatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestRegistryError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := NewCommunicationFailure(OpSearch, 0, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}
