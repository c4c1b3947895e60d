package submit_complaint

// SubmitComplaintRequest HTTP request model
type SubmitComplaintRequest struct {
	BookingID   *int64 `json:"bookingId,omitempty" validate:"omitempty,gt=0"`
	Type        string `json:"type" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=2000"`
}
