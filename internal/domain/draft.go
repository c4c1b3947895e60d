package domain

import "time"

// ReservationDraft кандидат в бронирование, который собирается пошагово.
// Живёт только в памяти, пока идёт оформление, и никогда не сохраняется.
type ReservationDraft struct {
	ID          string
	UserID      int64
	PropertyID  int64
	NightlyRate int64 // снимок цены за ночь на момент начала оформления

	CheckIn  time.Time
	CheckOut time.Time
	Addons   Addons

	Nights int
	Total  int64

	// IdempotencyKey ключ текущей попытки оплаты.
	// Меняется только когда деньги гарантированно не списаны.
	IdempotencyKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}
