package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   apperrors.ErrorCode
	}{
		{"not found", apperrors.NotFound("Game"), http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"already in game", apperrors.AlreadyInGame(), http.StatusConflict, apperrors.ErrCodeAlreadyInGame},
		{"not in game", apperrors.NotInGame(), http.StatusConflict, apperrors.ErrCodeNotInGame},
		{"game is full", apperrors.GameIsFull(), http.StatusConflict, apperrors.ErrCodeGameIsFull},
		{"game already started", apperrors.GameAlreadyStarted(), http.StatusBadRequest, apperrors.ErrCodeGameAlreadyStarted},
		{"invalid player amount", apperrors.InvalidPlayerAmount("bad"), http.StatusNotAcceptable, apperrors.ErrCodeInvalidPlayerAmount},
		{"unauthorized", apperrors.Unauthorized("no"), http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"rate limited", apperrors.RateLimitExceeded(), http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded},
		{"store unavailable", apperrors.StoreUnavailable(errors.New("down")), http.StatusServiceUnavailable, apperrors.ErrCodeStoreUnavailable},
		{"database error", apperrors.Database(errors.New("down")), http.StatusInternalServerError, apperrors.ErrCodeDatabase},
		{"plain error is masked as internal", errors.New("secret detail"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.NotContains(t, body.Error, "secret detail")
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
