package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authTestServer() http.Handler {
	m := NewAPIKeyMiddleware("valid-api-key")
	return m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAPIKeyMiddleware(t *testing.T) {
	handler := authTestServer()

	tests := []struct {
		name           string
		setHeader      func(r *http.Request)
		expectedStatus int
	}{
		{
			name:           "valid X-API-Key header",
			setHeader:      func(r *http.Request) { r.Header.Set("X-API-Key", "valid-api-key") },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid bearer token",
			setHeader:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer valid-api-key") },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing key",
			setHeader:      func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key",
			setHeader:      func(r *http.Request) { r.Header.Set("X-API-Key", "wrong-key") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed authorization header",
			setHeader:      func(r *http.Request) { r.Header.Set("Authorization", "valid-api-key") },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
			tt.setHeader(req)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}
