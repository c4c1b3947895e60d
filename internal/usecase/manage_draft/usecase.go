package manage_draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
)

// UseCase шаги мастера бронирования: начало, даты, опции, назад, отмена
type UseCase struct {
	catalog      CatalogClient
	registry     DraftRegistry
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает usecase. metrics может быть nil.
func NewUseCase(
	catalog CatalogClient,
	registry DraftRegistry,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		registry:     registry,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Start начинает оформление: фиксирует цену за ночь и открывает шаг DATES
func (uc *UseCase) Start(ctx context.Context, req *StartRequest) (*Response, error) {
	uc.logger.Info("StartDraft: user=%d, property=%d", req.UserID, req.PropertyID)

	if req.UserID <= 0 || req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: user and property ids must be positive", ErrInvalidInput)
	}

	property, err := uc.catalog.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			uc.logger.Warn("StartDraft: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("StartDraft: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %w", ErrInternal, err)
	}

	snap := uc.registry.Start(req.UserID, *property, uc.timeProvider.Now())
	uc.reportDrafts()

	return FromSnapshot(snap), nil
}

// Get возвращает текущее состояние черновика
func (uc *UseCase) Get(ctx context.Context, draftID string, userID int64) (*Response, error) {
	snap, err := uc.registry.Get(draftID, userID, uc.timeProvider.Now())
	if err != nil {
		return nil, uc.mapError("GetDraft", draftID, err)
	}
	return FromSnapshot(snap), nil
}

// SetDates сохраняет даты и переходит к опциям.
// При нарушении правил дат шаг не меняется и возвращается *daterules.ValidationError.
func (uc *UseCase) SetDates(ctx context.Context, req *DatesRequest) (*Response, error) {
	uc.logger.Info("SetDates: draft=%s, user=%d", req.DraftID, req.UserID)

	now := uc.timeProvider.Now()
	snap, err := uc.registry.Update(req.DraftID, req.UserID, now, func(s *stepper.Stepper) error {
		if err := s.SetDates(req.CheckIn, req.CheckOut, now); err != nil {
			return err
		}
		return s.Next(now)
	})
	if err != nil {
		return nil, uc.mapError("SetDates", req.DraftID, err)
	}

	uc.logger.Info("SetDates: draft=%s moved to %s, nights=%d, total=%d",
		req.DraftID, snap.State, snap.Draft.Nights, snap.Draft.Total)
	return FromSnapshot(snap), nil
}

// SetAddons сохраняет опции и переходит к подтверждению
func (uc *UseCase) SetAddons(ctx context.Context, req *AddonsRequest) (*Response, error) {
	uc.logger.Info("SetAddons: draft=%s, user=%d", req.DraftID, req.UserID)

	now := uc.timeProvider.Now()
	snap, err := uc.registry.Update(req.DraftID, req.UserID, now, func(s *stepper.Stepper) error {
		if err := s.SetAddons(req.Addons, now); err != nil {
			return err
		}
		return s.Next(now)
	})
	if err != nil {
		return nil, uc.mapError("SetAddons", req.DraftID, err)
	}

	return FromSnapshot(snap), nil
}

// Back возвращает мастер на предыдущий шаг с сохранением значений
func (uc *UseCase) Back(ctx context.Context, draftID string, userID int64) (*Response, error) {
	snap, err := uc.registry.Update(draftID, userID, uc.timeProvider.Now(), func(s *stepper.Stepper) error {
		return s.Back()
	})
	if err != nil {
		return nil, uc.mapError("Back", draftID, err)
	}
	return FromSnapshot(snap), nil
}

// Abort удаляет черновик
func (uc *UseCase) Abort(ctx context.Context, draftID string, userID int64) error {
	if err := uc.registry.Remove(draftID, userID, uc.timeProvider.Now()); err != nil {
		return uc.mapError("Abort", draftID, err)
	}

	uc.logger.Info("Abort: draft=%s discarded by user=%d", draftID, userID)
	uc.reportDrafts()
	return nil
}

func (uc *UseCase) mapError(op, draftID string, err error) error {
	var validationErr *daterules.ValidationError

	switch {
	case errors.As(err, &validationErr):
		uc.logger.Warn("%s: draft=%s dates rejected: %v", op, draftID, err)
		return validationErr
	case errors.Is(err, drafts.ErrDraftNotFound):
		uc.logger.Warn("%s: draft=%s not found", op, draftID)
		return ErrDraftNotFound
	case errors.Is(err, drafts.ErrAccessDenied):
		uc.logger.Warn("%s: access denied to draft=%s", op, draftID)
		return ErrAccessDenied
	case errors.Is(err, drafts.ErrDraftBusy):
		return ErrDraftBusy
	case errors.Is(err, stepper.ErrIllegalTransition), errors.Is(err, stepper.ErrWrongStep):
		uc.logger.Warn("%s: draft=%s: %v", op, draftID, err)
		return fmt.Errorf("%w: %v", ErrWrongStep, err)
	default:
		uc.logger.Error("%s: draft=%s: %v", op, draftID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) reportDrafts() {
	if uc.metrics != nil {
		uc.metrics.SetDraftsActive(uc.registry.Len())
	}
}
