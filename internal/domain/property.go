package domain

// Property bookable details of a rental property from the catalog service
type Property struct {
	ID          int64
	NightlyRate int64
	MaxGuests   int
	City        string
	Country     string
	Address     string
}
