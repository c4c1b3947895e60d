package rate_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/pkg/clock"
)

type mockBookingClient struct {
	mock.Mock
}

func (m *mockBookingClient) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingClient) Rate(ctx context.Context, bookingID int64, req bookingservice.RateBookingRequest) error {
	return m.Called(ctx, bookingID, req).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

func stay(status domain.BookingStatus, checkOut time.Time) *domain.Booking {
	return &domain.Booking{
		ID: 10, PropertyID: 42, UserID: 7,
		CheckIn: checkOut.AddDate(0, 0, -3), CheckOut: checkOut,
		Status: status,
	}
}

func TestExecute_Success(t *testing.T) {
	client := &mockBookingClient{}
	uc := NewUseCase(client, events.NopPublisher{}, clock.Fixed(now), nopLogger{})

	client.On("GetByID", mock.Anything, int64(10)).Return(stay(domain.StatusCompleted, now.AddDate(0, 0, -2)), nil)
	client.On("Rate", mock.Anything, int64(10), bookingservice.RateBookingRequest{Score: 5, Comment: "great"}).Return(nil)

	err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Score: 5, Comment: "  great "})

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"score too low", Request{BookingID: 10, UserID: 7, Score: 0}},
		{"score too high", Request{BookingID: 10, UserID: 7, Score: 6}},
		{"comment too long", Request{BookingID: 10, UserID: 7, Score: 3, Comment: strings.Repeat("я", domain.MaxRatingCommentLen+1)}},
		{"no booking", Request{UserID: 7, Score: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockBookingClient{}
			uc := NewUseCase(client, events.NopPublisher{}, clock.Fixed(now), nopLogger{})

			err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			client.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_Rejections(t *testing.T) {
	rated := stay(domain.StatusCompleted, now.AddDate(0, 0, -2))
	score := 4
	rated.Rating = &score

	tests := []struct {
		name    string
		booking *domain.Booking
		fetch   error
		want    error
	}{
		{"not found", nil, remote.NewError("booking", 404, ""), ErrBookingNotFound},
		{"foreign", &domain.Booking{ID: 10, UserID: 8, Status: domain.StatusCompleted}, nil, ErrAccessDenied},
		{"cancelled", stay(domain.StatusCancelled, now.AddDate(0, 0, -2)), nil, ErrNotRateable},
		{"still staying", stay(domain.StatusConfirmed, now.AddDate(0, 0, 1)), nil, ErrNotRateable},
		{"upcoming", stay(domain.StatusConfirmed, now.AddDate(0, 0, 10)), nil, ErrNotRateable},
		{"already rated", rated, nil, ErrAlreadyRated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockBookingClient{}
			uc := NewUseCase(client, events.NopPublisher{}, clock.Fixed(now), nopLogger{})
			client.On("GetByID", mock.Anything, int64(10)).Return(tt.booking, tt.fetch)

			err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Score: 4})

			assert.ErrorIs(t, err, tt.want)
			client.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
