package dashboard

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/classifier"
)

// Stats счетчики для дашборда пользователя
type Stats struct {
	Total              int
	Upcoming           int
	Current            int
	Past               int
	Completed          int
	Cancelled          int
	ActiveComplaints   int
	ResolvedComplaints int
}

// Aggregate считает статистику по уже классифицированным данным.
// Completed и Cancelled считаются по статусу, а не по категории.
func Aggregate(all []*domain.Booking, bookings classifier.BookingBuckets, complaints classifier.ComplaintBuckets) Stats {
	stats := Stats{
		Total:              len(bookings.Upcoming) + len(bookings.Current) + len(bookings.Past),
		Upcoming:           len(bookings.Upcoming),
		Current:            len(bookings.Current),
		Past:               len(bookings.Past),
		ActiveComplaints:   len(complaints.Active),
		ResolvedComplaints: len(complaints.Resolved),
	}

	for _, b := range all {
		if b == nil {
			continue
		}
		switch {
		case b.IsCompleted():
			stats.Completed++
		case b.IsCancelled():
			stats.Cancelled++
		}
	}

	return stats
}
