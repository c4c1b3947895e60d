package bookingservice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

// Client клиент сервиса бронирований
type Client struct {
	remote *remote.Client
}

func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// GetUserBookings получает все бронирования пользователя
func (c *Client) GetUserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	var list []Booking
	path := fmt.Sprintf("/api/v1/users/%d/bookings", userID)
	if err := c.remote.Call(ctx, "get_user_bookings", http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(list))
	for i := range list {
		b, err := list[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d: %v", remote.ErrInvalidResponse, list[i].ID, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// GetByID получает бронирование по ID
func (c *Client) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	path := fmt.Sprintf("/api/v1/bookings/%d", bookingID)
	return c.single(ctx, "get_booking", http.MethodGet, path, nil)
}

// Create создает бронирование
func (c *Client) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	return c.single(ctx, "create_booking", http.MethodPost, "/api/v1/bookings", req)
}

// Cancel отменяет бронирование по ID
func (c *Client) Cancel(ctx context.Context, bookingID int64) error {
	path := fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID)
	return c.remote.Call(ctx, "cancel_booking", http.MethodPost, path, nil, nil, nil)
}

// Modify заменяет даты и опции бронирования целиком.
// Контракт эндпоинта у сервиса бронирований предварительный.
func (c *Client) Modify(ctx context.Context, req ModifyBookingRequest) (*domain.Booking, error) {
	path := fmt.Sprintf("/api/v1/bookings/%d", req.BookingID)
	return c.single(ctx, "modify_booking", http.MethodPut, path, req)
}

// Rate сохраняет оценку проживания
func (c *Client) Rate(ctx context.Context, bookingID int64, req RateBookingRequest) error {
	path := fmt.Sprintf("/api/v1/bookings/%d/rating", bookingID)
	return c.remote.Call(ctx, "rate_booking", http.MethodPost, path, req, nil, nil)
}

func (c *Client) single(ctx context.Context, operation, method, path string, body any) (*domain.Booking, error) {
	var b Booking
	if err := c.remote.Call(ctx, operation, method, path, body, nil, &b); err != nil {
		return nil, err
	}
	booking, err := b.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", remote.ErrInvalidResponse, operation, err)
	}
	return booking, nil
}
