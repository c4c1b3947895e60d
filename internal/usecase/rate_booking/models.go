package rate_booking

// Request оценка проживания
type Request struct {
	BookingID int64
	UserID    int64
	Score     int
	Comment   string
}
