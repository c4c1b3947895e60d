package reconcile

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListRequest фильтр журнала. Пустой статус означает open.
type ListRequest struct {
	Status string
	Limit  uint64
	Offset uint64
}

// ResolveRequest закрытие записи после ручной сверки
type ResolveRequest struct {
	RecordID string
	Status   string // resolved или refunded
}

// RecordResponse запись журнала частичных фиксаций
type RecordResponse struct {
	ID               string     `json:"id"`
	IdempotencyKey   string     `json:"idempotencyKey"`
	UserID           int64      `json:"userId"`
	PropertyID       int64      `json:"propertyId"`
	AccountReference string     `json:"accountReference"`
	Amount           int64      `json:"amount"`
	CheckIn          string     `json:"checkin"`
	CheckOut         string     `json:"checkout"`
	ExtraBedding     bool       `json:"extraBedding"`
	DeepClean        bool       `json:"deepClean"`
	Cause            string     `json:"cause"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	ResolvedAt       *time.Time `json:"resolvedAt,omitempty"`
}

// FromDomain конвертирует запись журнала
func FromDomain(r *domain.PartialCommitRecord) RecordResponse {
	return RecordResponse{
		ID:               r.ID,
		IdempotencyKey:   r.IdempotencyKey,
		UserID:           r.UserID,
		PropertyID:       r.PropertyID,
		AccountReference: r.AccountReference,
		Amount:           r.Amount,
		CheckIn:          domain.FormatDate(r.CheckIn),
		CheckOut:         domain.FormatDate(r.CheckOut),
		ExtraBedding:     r.Addons.ExtraBedding,
		DeepClean:        r.Addons.DeepClean,
		Cause:            r.Cause,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		ResolvedAt:       r.ResolvedAt,
	}
}
