package submit_reservation

// SubmitRequest HTTP request model
type SubmitRequest struct {
	AccountReference string `json:"accountReference" validate:"required,max=128"`
}
