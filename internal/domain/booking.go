package domain

import (
	"slices"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Addons дополнительные опции проживания.
// Передаются как флаги, стоимость здесь не считается.
type Addons struct {
	ExtraBedding bool
	DeepClean    bool
}

// Booking represents a reservation of a property for a date range
type Booking struct {
	ID         int64
	PropertyID int64
	UserID     int64
	CheckIn    time.Time // календарная дата, без времени
	CheckOut   time.Time // календарная дата, без времени
	Paid       bool
	Status     BookingStatus
	Addons     Addons

	TotalAmount int64
	Rating      *int

	CreatedAt time.Time
}

// IsActive returns true if the booking still takes part in temporal bucketing
func (b *Booking) IsActive() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking is completed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// BelongsTo returns true if the booking is owned by the given user
func (b *Booking) BelongsTo(userID int64) bool {
	return b.UserID == userID
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	if slices.Contains(BookingStatuses, status) {
		return status, true
	}
	return "", false
}
