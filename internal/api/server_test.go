package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sikt-no/authority-registry-api/internal/api"
	"github.com/sikt-no/authority-registry-api/internal/authority"
	"github.com/sikt-no/authority-registry-api/internal/service/mocks"
)

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockAuthorityService(ctrl)
	// No expectations needed - health check doesn't call service
	server := api.NewServer(mockSvc)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	server := api.NewServer(mocks.NewMockAuthorityService(ctrl))

	req, err := http.NewRequest(http.MethodGet, "/version", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	for _, key := range []string{"version", "commit", "build_date", "go_version", "platform"} {
		assert.Contains(t, response, key)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []api.ServerOption
		wantStatus int
	}{
		{
			name: "served when a handler is configured",
			opts: []api.ServerOption{api.WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("# HELP up\n"))
			}))},
			wantStatus: http.StatusOK,
		},
		{
			name:       "absent otherwise",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			server := api.NewServer(mocks.NewMockAuthorityService(ctrl), tt.opts...)

			rr := httptest.NewRecorder()
			server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestPersonsRoutesAreMounted(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockAuthorityService(ctrl)
	mockSvc.EXPECT().GetAuthority(gomock.Any(), "42").Return(&authority.View{SystemControlNumber: "42"}, nil)

	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	server := api.NewServer(mockSvc, api.WithMiddlewares(mw("first"), mw("second"), api.LoggingMiddleware))

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/persons/42", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"first", "second"}, order)
}
