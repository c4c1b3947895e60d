package events

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий жизненного цикла бронирования
const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationPartialCommit = "reservation.partial_commit"
	TypeReservationRefunded      = "reservation.refunded"
	TypeBookingCancelled         = "booking.cancelled"
	TypeBookingModified          = "booking.modified"
	TypeBookingRated             = "booking.rated"
)

// Event сообщение о событии. Key задает партицию (порядок внутри одного бронирования).
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	UserID     int64     `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func New(eventType, key string, userID int64, payload any, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		UserID:     userID,
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}
