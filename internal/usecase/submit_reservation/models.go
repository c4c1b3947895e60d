package submit_reservation

import "github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"

// Compensation стратегия при частичной фиксации
type Compensation string

const (
	// CompensationNone записать в журнал сверки и оставить ключ для повтора
	CompensationNone Compensation = "none"
	// CompensationRefund попытаться вернуть оплату
	CompensationRefund Compensation = "refund"
)

// Request модель запроса на оформление
type Request struct {
	DraftID          string
	UserID           int64
	AccountReference string // платежный аккаунт или ID авторизованного платежа
}

// Response созданное бронирование и свежий классифицированный список
type Response struct {
	Booking  models.BookingResponse `json:"booking"`
	Bookings *models.BookingsView   `json:"bookings,omitempty"`
}
