package submit_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// UseCase двухфазное оформление: списание, затем создание бронирования.
// Общей атомарности у двух вызовов нет, частичная фиксация попадает в журнал сверки.
type UseCase struct {
	payments     PaymentClient
	bookings     BookingServiceClient
	registry     DraftRegistry
	ledger       ReconciliationRepository
	reloader     BookingsReloader
	publisher    EventPublisher
	metrics      MetricsRecorder
	compensation Compensation
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает usecase. metrics может быть nil.
func NewUseCase(
	payments PaymentClient,
	bookings BookingServiceClient,
	registry DraftRegistry,
	ledger ReconciliationRepository,
	reloader BookingsReloader,
	publisher EventPublisher,
	metrics MetricsRecorder,
	compensation Compensation,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if compensation == "" {
		compensation = CompensationNone
	}
	return &UseCase{
		payments:     payments,
		bookings:     bookings,
		registry:     registry,
		ledger:       ledger,
		reloader:     reloader,
		publisher:    publisher,
		metrics:      metrics,
		compensation: compensation,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute оформляет бронирование по черновику на шаге CONFIRM
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReservation: draft=%s, user=%d", req.DraftID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReservation: validation failed: %v", err)
		return nil, err
	}
	accountRef := strings.TrimSpace(req.AccountReference)

	// 2. CONFIRM -> SUBMITTING под блокировкой реестра, повторная отправка невозможна
	now := uc.timeProvider.Now()
	var draft domain.ReservationDraft
	_, err := uc.registry.Update(req.DraftID, req.UserID, now, func(s *stepper.Stepper) error {
		d, err := s.BeginSubmit(now)
		draft = d
		return err
	})
	if err != nil {
		return nil, uc.mapDraftError(req.DraftID, err)
	}

	// Клиент может отключиться между списанием и бронью, протокол доводим до конца
	ctx = context.WithoutCancel(ctx)

	// 3. Списание
	charge, err := uc.payments.Charge(ctx, paymentservice.ChargeRequest{
		OwnerID:          req.UserID,
		AccountReference: accountRef,
		Amount:           draft.Total,
	}, draft.IdempotencyKey)
	if err != nil {
		return nil, uc.chargeFailed(draft, err)
	}
	if !charge.Settled {
		uc.logger.Warn("SubmitReservation: payment not settled: draft=%s, amount=%d", draft.ID, draft.Total)
		uc.failSubmit(draft, ErrPaymentFailed, true)
		uc.outcome(metrics.OutcomePaymentFailed)
		return nil, ErrPaymentFailed
	}

	uc.logger.Info("SubmitReservation: payment settled: draft=%s, payment=%s, amount=%d",
		draft.ID, charge.PaymentID, draft.Total)

	// 4. Создание бронирования, только после успешного списания
	booking, err := uc.bookings.Create(ctx, bookingservice.CreateBookingRequest{
		PropertyID:   draft.PropertyID,
		UserID:       draft.UserID,
		CheckIn:      domain.FormatDate(draft.CheckIn),
		CheckOut:     domain.FormatDate(draft.CheckOut),
		ExtraBedding: draft.Addons.ExtraBedding,
		DeepClean:    draft.Addons.DeepClean,
		TotalAmount:  draft.Total,
		Paid:         true,
	})
	if err != nil {
		return nil, uc.reserveFailed(ctx, draft, accountRef, err)
	}

	// 5. Успех: SUBMITTING -> DONE, черновик удаляется.
	// Запись о частичной фиксации от прошлой попытки с этим ключом больше не требует возврата.
	uc.closeLedgerRecord(ctx, draft)
	if _, err := uc.registry.Update(draft.ID, draft.UserID, uc.timeProvider.Now(), func(s *stepper.Stepper) error {
		return s.CompleteSubmit()
	}); err != nil {
		uc.logger.Warn("SubmitReservation: failed to complete draft=%s: %v", draft.ID, err)
	}
	uc.registry.Discard(draft.ID)
	uc.reportDrafts()
	uc.outcome(metrics.OutcomeSucceeded)

	uc.publish(ctx, events.New(events.TypeReservationCreated, inflight.BookingKey(booking.ID), booking.UserID, map[string]any{
		"bookingId":  booking.ID,
		"propertyId": booking.PropertyID,
		"checkin":    domain.FormatDate(booking.CheckIn),
		"checkout":   domain.FormatDate(booking.CheckOut),
		"amount":     draft.Total,
	}, uc.timeProvider.Now()))

	uc.logger.Info("SubmitReservation: booking id=%d created from draft=%s", booking.ID, draft.ID)

	// 6. Полная перезагрузка списка. Бронь уже создана, поэтому сбой здесь не ошибка оформления.
	resp := &Response{Booking: models.FromDomainBooking(booking, uc.timeProvider.Now())}
	view, err := uc.reloader.Reload(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("SubmitReservation: reload after booking id=%d failed: %v", booking.ID, err)
		return resp, nil
	}
	resp.Bookings = view

	return resp, nil
}

// chargeFailed обрабатывает ошибку вызова списания.
// Явный отказ сервиса означает, что денег не списали. Иначе исход неизвестен и ключ сохраняется.
func (uc *UseCase) chargeFailed(draft domain.ReservationDraft, err error) error {
	if errors.Is(err, remote.ErrRequestFailed) {
		uc.logger.Warn("SubmitReservation: payment declined: draft=%s: %v", draft.ID, err)
		uc.failSubmit(draft, ErrPaymentFailed, true)
		uc.outcome(metrics.OutcomePaymentFailed)
		return fmt.Errorf("%w: %s", ErrPaymentFailed, remote.MessageOf(err))
	}

	uc.logger.Error("SubmitReservation: payment outcome unknown: draft=%s, key=%s: %v",
		draft.ID, draft.IdempotencyKey, err)
	wrapped := fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	uc.failSubmit(draft, wrapped, false)
	uc.outcome(metrics.OutcomeError)
	return wrapped
}

// reserveFailed обрабатывает частичную фиксацию: деньги списаны, брони нет
func (uc *UseCase) reserveFailed(ctx context.Context, draft domain.ReservationDraft, accountRef string, cause error) error {
	uc.logger.Error("SubmitReservation: PARTIAL COMMIT draft=%s, user=%d, property=%d, amount=%d, key=%s: %v",
		draft.ID, draft.UserID, draft.PropertyID, draft.Total, draft.IdempotencyKey, cause)

	now := uc.timeProvider.Now()
	rec := &domain.PartialCommitRecord{
		ID:               uuid.NewString(),
		IdempotencyKey:   draft.IdempotencyKey,
		UserID:           draft.UserID,
		PropertyID:       draft.PropertyID,
		AccountReference: accountRef,
		Amount:           draft.Total,
		CheckIn:          draft.CheckIn,
		CheckOut:         draft.CheckOut,
		Addons:           draft.Addons,
		Cause:            cause.Error(),
		Status:           domain.ReconciliationOpen,
	}

	if uc.compensation == CompensationRefund && uc.refund(ctx, draft, accountRef) {
		rec.Status = domain.ReconciliationRefunded
		rec.ResolvedAt = &now
		uc.saveRecord(ctx, rec)
		uc.publish(ctx, events.New(events.TypeReservationRefunded, draft.IdempotencyKey, draft.UserID, rec, now))

		uc.failSubmit(draft, ErrReservationRefunded, true)
		uc.outcome(metrics.OutcomeRefunded)
		return fmt.Errorf("%w: %v", ErrReservationRefunded, cause)
	}

	pce := &PartialCommitError{
		UserID:         draft.UserID,
		PropertyID:     draft.PropertyID,
		Amount:         draft.Total,
		CheckIn:        draft.CheckIn,
		CheckOut:       draft.CheckOut,
		IdempotencyKey: draft.IdempotencyKey,
		Cause:          cause,
	}
	if uc.saveRecord(ctx, rec) {
		pce.RecordID = rec.ID
	}
	uc.publish(ctx, events.New(events.TypeReservationPartialCommit, draft.IdempotencyKey, draft.UserID, rec, now))

	// Ключ сохраняется: повтор с ним не спишет деньги второй раз
	uc.failSubmit(draft, pce, false)
	uc.outcome(metrics.OutcomePartialCommit)
	return pce
}

func (uc *UseCase) refund(ctx context.Context, draft domain.ReservationDraft, accountRef string) bool {
	res, err := uc.payments.Refund(ctx, paymentservice.RefundRequest{
		OwnerID:          draft.UserID,
		AccountReference: accountRef,
		Amount:           draft.Total,
		Reason:           "reservation creation failed",
	}, draft.IdempotencyKey)
	if err != nil {
		uc.logger.Error("SubmitReservation: refund failed: draft=%s, key=%s: %v", draft.ID, draft.IdempotencyKey, err)
		return false
	}
	if !res.Refunded {
		uc.logger.Error("SubmitReservation: refund not accepted: draft=%s, key=%s", draft.ID, draft.IdempotencyKey)
		return false
	}

	uc.logger.Info("SubmitReservation: payment refunded: draft=%s, refund=%s", draft.ID, res.RefundID)
	return true
}

func (uc *UseCase) saveRecord(ctx context.Context, rec *domain.PartialCommitRecord) bool {
	if err := uc.ledger.Create(ctx, rec); err != nil {
		uc.logger.Error("SubmitReservation: failed to save reconciliation record key=%s: %v", rec.IdempotencyKey, err)
		return false
	}
	return true
}

func (uc *UseCase) closeLedgerRecord(ctx context.Context, draft domain.ReservationDraft) {
	closed, err := uc.ledger.CloseByKey(ctx, draft.IdempotencyKey, domain.ReconciliationResolved, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to close reconciliation record key=%s: %v", draft.IdempotencyKey, err)
		return
	}
	if closed > 0 {
		uc.logger.Info("SubmitReservation: reconciliation record key=%s resolved by successful retry", draft.IdempotencyKey)
	}
}

// failSubmit возвращает мастер в CONFIRM с ошибкой
func (uc *UseCase) failSubmit(draft domain.ReservationDraft, cause error, rotateKey bool) {
	_, err := uc.registry.Update(draft.ID, draft.UserID, uc.timeProvider.Now(), func(s *stepper.Stepper) error {
		return s.FailSubmit(cause, rotateKey)
	})
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to return draft=%s to confirm: %v", draft.ID, err)
	}
}

func (uc *UseCase) mapDraftError(draftID string, err error) error {
	var validationErr *daterules.ValidationError

	switch {
	case errors.As(err, &validationErr):
		uc.logger.Warn("SubmitReservation: draft=%s dates no longer valid: %v", draftID, err)
		return validationErr
	case errors.Is(err, drafts.ErrDraftNotFound):
		return ErrDraftNotFound
	case errors.Is(err, drafts.ErrAccessDenied):
		return ErrAccessDenied
	case errors.Is(err, stepper.ErrIllegalTransition):
		uc.logger.Warn("SubmitReservation: draft=%s: %v", draftID, err)
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) publish(ctx context.Context, e events.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("SubmitReservation: failed to publish %s: %v", e.Type, err)
	}
}

func (uc *UseCase) outcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncReservationOutcome(outcome)
	}
}

func (uc *UseCase) reportDrafts() {
	if uc.metrics != nil {
		uc.metrics.SetDraftsActive(uc.registry.Len())
	}
}
