package classifier

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Bucket временная категория бронирования
type Bucket string

const (
	BucketUpcoming Bucket = "upcoming"
	BucketCurrent  Bucket = "current"
	BucketPast     Bucket = "past"
)

// BookingBuckets результат одного прохода классификации.
// Списки содержат ссылки на исходные бронирования и не владеют ими.
type BookingBuckets struct {
	Upcoming []*domain.Booking // по возрастанию даты заезда
	Current  []*domain.Booking // по возрастанию даты заезда
	Past     []*domain.Booking // по убыванию даты заезда
}

// Active предстоящие и текущие бронирования по возрастанию даты заезда
func (b BookingBuckets) Active() []*domain.Booking {
	active := make([]*domain.Booking, 0, len(b.Upcoming)+len(b.Current))
	active = append(active, b.Current...)
	active = append(active, b.Upcoming...)
	sortByCheckInAsc(active)
	return active
}

// Total общее число классифицированных бронирований
func (b BookingBuckets) Total() int {
	return len(b.Upcoming) + len(b.Current) + len(b.Past)
}

// BucketOf определяет категорию одного бронирования относительно now.
// Даты сравниваются как календарные дни.
func BucketOf(b *domain.Booking, now time.Time) Bucket {
	if !b.IsActive() {
		return BucketPast
	}

	today := domain.DateOnly(now)
	checkIn := domain.DateOnly(b.CheckIn)
	checkOut := domain.DateOnly(b.CheckOut)

	switch {
	case checkIn.After(today):
		return BucketUpcoming
	case !today.After(checkOut):
		return BucketCurrent
	default:
		return BucketPast
	}
}

// ClassifyBookings раскладывает бронирования по категориям.
// now фиксируется вызывающим один раз на весь проход.
func ClassifyBookings(bookings []*domain.Booking, now time.Time) BookingBuckets {
	buckets := BookingBuckets{
		Upcoming: []*domain.Booking{},
		Current:  []*domain.Booking{},
		Past:     []*domain.Booking{},
	}

	for _, b := range bookings {
		if b == nil {
			continue
		}
		switch BucketOf(b, now) {
		case BucketUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, b)
		case BucketCurrent:
			buckets.Current = append(buckets.Current, b)
		default:
			buckets.Past = append(buckets.Past, b)
		}
	}

	sortByCheckInAsc(buckets.Upcoming)
	sortByCheckInAsc(buckets.Current)
	sortByCheckInDesc(buckets.Past)

	return buckets
}

// Recent последние limit бронирований по убыванию даты заезда без учета статуса
func Recent(bookings []*domain.Booking, limit int) []*domain.Booking {
	recent := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			recent = append(recent, b)
		}
	}
	sortByCheckInDesc(recent)

	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// IsActionable бронирование можно отменить или изменить:
// оно подтверждено и проживание еще не началось
func IsActionable(b *domain.Booking, now time.Time) bool {
	if b == nil || b.Status != domain.StatusConfirmed {
		return false
	}
	today := domain.DateOnly(now)
	return domain.DateOnly(b.CheckIn).After(today) && domain.DateOnly(b.CheckOut).After(today)
}

func sortByCheckInAsc(list []*domain.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CheckIn.Before(list[j].CheckIn)
	})
}

func sortByCheckInDesc(list []*domain.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CheckIn.After(list[j].CheckIn)
	})
}
