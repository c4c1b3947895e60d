package domain

import "time"

// ReconciliationStatus статус записи о частичной фиксации
type ReconciliationStatus string

const (
	ReconciliationOpen     ReconciliationStatus = "open"
	ReconciliationRefunded ReconciliationStatus = "refunded"
	ReconciliationResolved ReconciliationStatus = "resolved"
)

// PartialCommitRecord фиксирует ситуацию, когда оплата прошла,
// а бронирование не было создано. Нужна для ручной сверки.
type PartialCommitRecord struct {
	ID               string
	IdempotencyKey   string
	UserID           int64
	PropertyID       int64
	AccountReference string
	Amount           int64
	CheckIn          time.Time
	CheckOut         time.Time
	Addons           Addons
	Cause            string
	Status           ReconciliationStatus

	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// IsOpen returns true if the record still awaits reconciliation
func (r *PartialCommitRecord) IsOpen() bool {
	return r.Status == ReconciliationOpen
}
