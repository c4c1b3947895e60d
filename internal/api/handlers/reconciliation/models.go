package reconciliation

// ResolveRequest HTTP request model
type ResolveRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=resolved refunded"`
}
