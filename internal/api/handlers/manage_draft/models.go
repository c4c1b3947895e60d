package manage_draft

// StartDraftRequest HTTP request model
type StartDraftRequest struct {
	PropertyID int64 `json:"propertyId" validate:"required,gt=0"`
}

// DatesRequest HTTP request model
type DatesRequest struct {
	CheckIn  string `json:"checkin" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkout" validate:"required,datetime=2006-01-02"`
}

// AddonsRequest HTTP request model
type AddonsRequest struct {
	ExtraBedding bool `json:"extraBedding"`
	DeepClean    bool `json:"deepClean"`
}
