package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
)

func TestAggregate(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d := func(m time.Month, day int) time.Time { return time.Date(2025, m, day, 0, 0, 0, 0, time.UTC) }

	bookings := []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, CheckIn: d(6, 5), CheckOut: d(6, 8)},
		{ID: 2, Status: domain.StatusConfirmed, CheckIn: d(5, 28), CheckOut: d(6, 3)},
		{ID: 3, Status: domain.StatusCompleted, CheckIn: d(5, 1), CheckOut: d(5, 5)},
		{ID: 4, Status: domain.StatusCancelled, CheckIn: d(7, 1), CheckOut: d(7, 5)},
		{ID: 5, Status: domain.StatusPending, CheckIn: d(6, 10), CheckOut: d(6, 12)},
	}
	complaints := []*domain.Complaint{
		{ID: 1, Status: domain.ComplaintPending},
		{ID: 2, Status: domain.ComplaintClosed},
		{ID: 3, Status: domain.ComplaintResolved},
	}

	stats := Aggregate(
		bookings,
		classifier.ClassifyBookings(bookings, now),
		classifier.ClassifyComplaints(complaints),
	)

	assert.Equal(t, Stats{
		Total:              5,
		Upcoming:           2,
		Current:            1,
		Past:               2,
		Completed:          1,
		Cancelled:          1,
		ActiveComplaints:   1,
		ResolvedComplaints: 2,
	}, stats)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, classifier.ClassifyBookings(nil, time.Now()), classifier.ClassifyComplaints(nil))

	assert.Equal(t, Stats{}, stats)
}
