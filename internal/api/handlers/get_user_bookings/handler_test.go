package get_user_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Reload(ctx context.Context, userID int64) (*models.BookingsView, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*models.BookingsView)
	return v, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, path string, authUser int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/users/{userId}/bookings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), authUser))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &mockService{}
	svc.On("Reload", mock.Anything, int64(7)).Return(&models.BookingsView{
		Upcoming: []models.BookingResponse{{ID: 1, Bucket: "upcoming"}},
		Current:  []models.BookingResponse{},
		Past:     []models.BookingResponse{},
		Recent:   []models.BookingResponse{{ID: 1}},
		Total:    1,
	}, nil)

	rec := serve(svc, "/api/v1/users/7/bookings", 7)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                `json:"success"`
		Data    models.BookingsView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Total)
	assert.NotNil(t, body.Data.Current)
}

func TestHandle_ForeignUser(t *testing.T) {
	svc := &mockService{}

	rec := serve(svc, "/api/v1/users/8/bookings", 7)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	svc.AssertNotCalled(t, "Reload", mock.Anything, mock.Anything)
}

func TestHandle_RemoteFailure(t *testing.T) {
	svc := &mockService{}
	svc.On("Reload", mock.Anything, int64(7)).
		Return(nil, fmt.Errorf("%w: %w", bookings.ErrRemote, remote.NewError("booking", 503, "")))

	rec := serve(svc, "/api/v1/users/7/bookings", 7)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
}
