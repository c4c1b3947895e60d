package domain

// Classification constants
const (
	RecentBookingsLimit = 5
	MillisPerDay        = 86_400_000
)

// Rating bounds
const (
	MinRating           = 1
	MaxRating           = 5
	MaxRatingCommentLen = 1000
	MaxComplaintLength  = 2000
	MaxComplaintTypeLen = 50
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingStatuses все допустимые статусы бронирования
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses статусы, для которых бронирование распределяется по датам
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
