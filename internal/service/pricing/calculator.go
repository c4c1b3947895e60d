package pricing

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
)

// Quote расчёт стоимости проживания.
// Доп. опции передаются без изменений и в сумму не входят.
type Quote struct {
	NightlyRate int64
	Nights      int
	Total       int64
	Addons      domain.Addons
}

// Total возвращает стоимость: цена за ночь * количество ночей
func Total(nightlyRate int64, nights int) int64 {
	return nightlyRate * int64(nights)
}

// QuoteFor считает количество ночей по датам и итоговую сумму
func QuoteFor(nightlyRate int64, checkIn, checkOut time.Time, addons domain.Addons) Quote {
	nights := daterules.Nights(checkIn, checkOut)
	return Quote{
		NightlyRate: nightlyRate,
		Nights:      nights,
		Total:       Total(nightlyRate, nights),
		Addons:      addons,
	}
}
