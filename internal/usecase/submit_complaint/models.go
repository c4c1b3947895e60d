package submit_complaint

// Request новая жалоба. BookingID необязателен.
type Request struct {
	UserID      int64
	BookingID   *int64
	Type        string
	Description string
}
