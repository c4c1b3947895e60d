package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var today = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func booking(id int64, status domain.BookingStatus, checkIn, checkOut string) *domain.Booking {
	return &domain.Booking{
		ID:       id,
		UserID:   1,
		Status:   status,
		CheckIn:  date(checkIn),
		CheckOut: date(checkOut),
	}
}

func ids(list []*domain.Booking) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		want    Bucket
	}{
		{
			name:    "confirmed future stay is upcoming",
			booking: booking(1, domain.StatusConfirmed, "2025-06-05", "2025-06-08"),
			want:    BucketUpcoming,
		},
		{
			name:    "confirmed stay spanning today is current",
			booking: booking(2, domain.StatusConfirmed, "2025-05-28", "2025-06-03"),
			want:    BucketCurrent,
		},
		{
			name:    "confirmed finished stay is past",
			booking: booking(3, domain.StatusConfirmed, "2025-05-01", "2025-05-05"),
			want:    BucketPast,
		},
		{
			name:    "pending stay starting today is current",
			booking: booking(4, domain.StatusPending, "2025-06-01", "2025-06-04"),
			want:    BucketCurrent,
		},
		{
			name:    "checkout today is still current",
			booking: booking(5, domain.StatusConfirmed, "2025-05-29", "2025-06-01"),
			want:    BucketCurrent,
		},
		{
			name:    "cancelled future booking is past",
			booking: booking(6, domain.StatusCancelled, "2030-01-01", "2030-01-05"),
			want:    BucketPast,
		},
		{
			name:    "completed booking is past",
			booking: booking(7, domain.StatusCompleted, "2025-06-10", "2025-06-12"),
			want:    BucketPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.booking, today))
		})
	}
}

func TestClassifyBookings_OrderingAndPartition(t *testing.T) {
	all := []*domain.Booking{
		booking(1, domain.StatusConfirmed, "2025-06-20", "2025-06-22"),
		booking(2, domain.StatusConfirmed, "2025-05-01", "2025-05-05"),
		booking(3, domain.StatusConfirmed, "2025-06-05", "2025-06-08"),
		booking(4, domain.StatusCancelled, "2030-01-01", "2030-01-05"),
		booking(5, domain.StatusConfirmed, "2025-05-28", "2025-06-03"),
		booking(6, domain.StatusCompleted, "2025-04-10", "2025-04-12"),
		booking(7, domain.StatusPending, "2025-05-31", "2025-06-02"),
	}

	buckets := ClassifyBookings(all, today)

	assert.Equal(t, []int64{3, 1}, ids(buckets.Upcoming))
	assert.Equal(t, []int64{5, 7}, ids(buckets.Current))
	assert.Equal(t, []int64{4, 2, 6}, ids(buckets.Past))
	assert.Equal(t, len(all), buckets.Total())
	assert.Equal(t, []int64{5, 7, 3, 1}, ids(buckets.Active()))
}

func TestClassifyBookings_StableForEqualDates(t *testing.T) {
	all := []*domain.Booking{
		booking(1, domain.StatusConfirmed, "2025-06-05", "2025-06-08"),
		booking(2, domain.StatusConfirmed, "2025-06-05", "2025-06-07"),
		booking(3, domain.StatusCancelled, "2025-05-05", "2025-05-07"),
		booking(4, domain.StatusCompleted, "2025-05-05", "2025-05-08"),
	}

	buckets := ClassifyBookings(all, today)

	assert.Equal(t, []int64{1, 2}, ids(buckets.Upcoming))
	assert.Equal(t, []int64{3, 4}, ids(buckets.Past))
}

func TestClassifyBookings_Idempotent(t *testing.T) {
	all := []*domain.Booking{
		booking(1, domain.StatusConfirmed, "2025-06-20", "2025-06-22"),
		booking(2, domain.StatusConfirmed, "2025-05-01", "2025-05-05"),
		booking(3, domain.StatusConfirmed, "2025-05-28", "2025-06-03"),
	}

	first := ClassifyBookings(all, today)
	second := ClassifyBookings(all, today)

	assert.Equal(t, first, second)
	// Исходный порядок не меняется
	assert.Equal(t, []int64{1, 2, 3}, ids(all))
}

func TestClassifyBookings_Empty(t *testing.T) {
	buckets := ClassifyBookings(nil, today)

	assert.Empty(t, buckets.Upcoming)
	assert.Empty(t, buckets.Current)
	assert.Empty(t, buckets.Past)
	assert.NotNil(t, buckets.Upcoming)
}

func TestClassifyBookings_LocalTimezone(t *testing.T) {
	// 01:00 по MSK 5 июня соответствует 4 июня по UTC, день берется в локации now
	loc := time.FixedZone("MSK", 3*3600)
	now := time.Date(2025, 6, 5, 1, 0, 0, 0, loc)

	b := booking(1, domain.StatusConfirmed, "2025-06-05", "2025-06-07")

	assert.Equal(t, BucketCurrent, BucketOf(b, now))
}

func TestRecent(t *testing.T) {
	all := []*domain.Booking{
		booking(1, domain.StatusConfirmed, "2025-01-01", "2025-01-02"),
		booking(2, domain.StatusCancelled, "2025-07-01", "2025-07-02"),
		booking(3, domain.StatusConfirmed, "2025-03-01", "2025-03-02"),
		booking(4, domain.StatusCompleted, "2025-02-01", "2025-02-02"),
		booking(5, domain.StatusConfirmed, "2025-06-10", "2025-06-12"),
		booking(6, domain.StatusPending, "2025-05-01", "2025-05-02"),
		booking(7, domain.StatusConfirmed, "2025-04-01", "2025-04-02"),
	}

	recent := Recent(all, domain.RecentBookingsLimit)

	require.Len(t, recent, 5)
	assert.Equal(t, []int64{2, 5, 6, 7, 3}, ids(recent))
}

func TestRecent_FewerThanLimit(t *testing.T) {
	all := []*domain.Booking{
		booking(1, domain.StatusConfirmed, "2025-01-01", "2025-01-02"),
		booking(2, domain.StatusConfirmed, "2025-02-01", "2025-02-02"),
	}

	assert.Equal(t, []int64{2, 1}, ids(Recent(all, 5)))
}

func TestIsActionable(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		want    bool
	}{
		{name: "confirmed future", booking: booking(1, domain.StatusConfirmed, "2025-06-05", "2025-06-08"), want: true},
		{name: "pending future", booking: booking(2, domain.StatusPending, "2025-06-05", "2025-06-08")},
		{name: "confirmed starting today", booking: booking(3, domain.StatusConfirmed, "2025-06-01", "2025-06-03")},
		{name: "confirmed current", booking: booking(4, domain.StatusConfirmed, "2025-05-28", "2025-06-03")},
		{name: "cancelled future", booking: booking(5, domain.StatusCancelled, "2025-06-05", "2025-06-08")},
		{name: "nil booking", booking: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActionable(tt.booking, today))
		})
	}
}
