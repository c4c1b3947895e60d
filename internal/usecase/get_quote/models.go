package get_quote

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса расчета стоимости. Пустые даты дают нарушение, а не ошибку.
type Request struct {
	PropertyID int64
	CheckIn    time.Time
	CheckOut   time.Time
	Addons     domain.Addons
}

// Response расчет стоимости и нарушения правил дат
type Response struct {
	PropertyID   int64    `json:"propertyId"`
	NightlyRate  int64    `json:"nightlyRate"`
	CheckIn      string   `json:"checkin,omitempty"`
	CheckOut     string   `json:"checkout,omitempty"`
	ExtraBedding bool     `json:"extraBedding"`
	DeepClean    bool     `json:"deepClean"`
	Nights       int      `json:"nights"`
	Total        int64    `json:"total"`
	Valid        bool     `json:"valid"`
	Violations   []string `json:"violations"`
}
