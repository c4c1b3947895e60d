package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

func TestRespondError_TimestampIsRFC3339(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondBadRequest(rec, "неверный запрос")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "неверный запрос", body["message"])

	raw, ok := body["timestamp"].(string)
	require.True(t, ok)
	ts, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	assert.Equal(t, ts.Format(time.RFC3339), raw)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestRespondRemoteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"connectivity", remote.NewError("payment", 0, ""), http.StatusServiceUnavailable},
		{"declined with message", remote.NewError("razorpay", http.StatusBadRequest, "card declined"), http.StatusBadGateway},
		{"server", remote.NewError("booking", http.StatusInternalServerError, ""), http.StatusBadGateway},
		{"conflict", remote.NewError("booking", http.StatusConflict, "dates taken"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handled := RespondRemoteError(rec, tt.err)

			require.True(t, handled)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.False(t, RespondRemoteError(httptest.NewRecorder(), assert.AnError))
}
