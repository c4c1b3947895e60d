package bookingservice

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Booking модель бронирования в ответах сервиса бронирований
type Booking struct {
	ID           int64      `json:"id"`
	PropertyID   int64      `json:"propertyId"`
	UserID       int64      `json:"userId"`
	CheckIn      string     `json:"checkin"`
	CheckOut     string     `json:"checkout"`
	Paid         bool       `json:"paid"`
	Status       string     `json:"status"`
	ExtraBedding bool       `json:"extraBedding"`
	DeepClean    bool       `json:"deepClean"`
	TotalAmount  int64      `json:"totalAmount"`
	Rating       *int       `json:"rating,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// CreateBookingRequest запрос на создание бронирования после успешной оплаты
type CreateBookingRequest struct {
	PropertyID   int64  `json:"propertyId"`
	UserID       int64  `json:"userId"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	ExtraBedding bool   `json:"extraBedding"`
	DeepClean    bool   `json:"deepClean"`
	TotalAmount  int64  `json:"totalAmount"`
	Paid         bool   `json:"paid"`
}

// ModifyBookingRequest полная замена дат и опций
type ModifyBookingRequest struct {
	BookingID    int64  `json:"bookingId"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	ExtraBedding bool   `json:"extraBedding"`
	DeepClean    bool   `json:"deepClean"`
}

// RateBookingRequest оценка завершенного проживания
type RateBookingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (b *Booking) ToDomain() (*domain.Booking, error) {
	checkIn, err := domain.ParseDate(b.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid checkin %q: %v", b.CheckIn, err)
	}
	checkOut, err := domain.ParseDate(b.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout %q: %v", b.CheckOut, err)
	}
	status, ok := domain.ParseBookingStatus(b.Status)
	if !ok {
		return nil, fmt.Errorf("unknown status %q", b.Status)
	}

	booking := &domain.Booking{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Paid:       b.Paid,
		Status:     status,
		Addons: domain.Addons{
			ExtraBedding: b.ExtraBedding,
			DeepClean:    b.DeepClean,
		},
		TotalAmount: b.TotalAmount,
		Rating:      b.Rating,
	}
	if b.CreatedAt != nil {
		booking.CreatedAt = *b.CreatedAt
	}
	return booking, nil
}
