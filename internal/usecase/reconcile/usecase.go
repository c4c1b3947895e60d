package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reconciliation"
)

// UseCase просмотр и закрытие записей о частичной фиксации
type UseCase struct {
	repo         ReconciliationRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(repo ReconciliationRepository, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает записи журнала по статусу
func (uc *UseCase) List(ctx context.Context, req *ListRequest) ([]RecordResponse, error) {
	status := domain.ReconciliationOpen
	if req.Status != "" {
		parsed, ok := parseStatus(req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
		}
		status = parsed
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	records, err := uc.repo.List(ctx, &status, limit, req.Offset)
	if err != nil {
		uc.logger.Error("Reconcile: failed to list records status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromDomain(r))
	}
	return out, nil
}

// Resolve закрывает открытую запись после ручной сверки
func (uc *UseCase) Resolve(ctx context.Context, req *ResolveRequest) (*RecordResponse, error) {
	if req.RecordID == "" {
		return nil, fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}

	status := domain.ReconciliationResolved
	if req.Status != "" {
		parsed, ok := parseStatus(req.Status)
		if !ok || parsed == domain.ReconciliationOpen {
			return nil, fmt.Errorf("%w: status must be resolved or refunded", ErrInvalidInput)
		}
		status = parsed
	}

	rec, err := uc.repo.Close(ctx, req.RecordID, status, uc.timeProvider.Now())
	if err != nil {
		switch {
		case errors.Is(err, reconciliation.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, reconciliation.ErrAlreadyClosed):
			return nil, ErrAlreadyClosed
		default:
			uc.logger.Error("Reconcile: failed to close record id=%s: %v", req.RecordID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("Reconcile: record id=%s closed as %s", rec.ID, rec.Status)

	resp := FromDomain(rec)
	return &resp, nil
}

func parseStatus(s string) (domain.ReconciliationStatus, bool) {
	switch st := domain.ReconciliationStatus(s); st {
	case domain.ReconciliationOpen, domain.ReconciliationRefunded, domain.ReconciliationResolved:
		return st, true
	}
	return "", false
}
