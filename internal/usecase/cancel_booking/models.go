package cancel_booking

import "github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"

// Request модель запроса на отмену
type Request struct {
	BookingID int64
	UserID    int64
	Confirmed bool
}

// Response обновленный список бронирований после отмены
type Response struct {
	BookingID int64                `json:"bookingId"`
	Bookings  *models.BookingsView `json:"bookings,omitempty"`
}
