package rate_booking

// RateBookingRequest HTTP request model
type RateBookingRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}
