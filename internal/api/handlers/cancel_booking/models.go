package cancel_booking

// CancelBookingRequest HTTP request model.
// Confirmed выставляется после явного подтверждения пользователем.
type CancelBookingRequest struct {
	Confirmed bool `json:"confirmed"`
}
