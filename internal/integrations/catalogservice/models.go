package catalogservice

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Property модель объекта из каталога
type Property struct {
	ID          int64  `json:"id"`
	NightlyRate int64  `json:"nightlyRate"`
	MaxGuests   int    `json:"maxGuests"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Address     string `json:"address"`
}

func (p *Property) ToDomain() *domain.Property {
	return &domain.Property{
		ID:          p.ID,
		NightlyRate: p.NightlyRate,
		MaxGuests:   p.MaxGuests,
		City:        p.City,
		Country:     p.Country,
		Address:     p.Address,
	}
}
