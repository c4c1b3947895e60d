package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Request полная замена дат и доп. опций бронирования
type Request struct {
	BookingID int64
	UserID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	Addons    domain.Addons
}

// Response измененное бронирование и свежий список
type Response struct {
	Booking  models.BookingResponse `json:"booking"`
	Bookings *models.BookingsView   `json:"bookings,omitempty"`
}
