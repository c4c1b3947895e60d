package submit_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
	"github.com/m04kA/SMC-ReservationService/pkg/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Charge(ctx context.Context, req paymentservice.ChargeRequest, key string) (*paymentservice.ChargeResult, error) {
	args := m.Called(ctx, req, key)
	r, _ := args.Get(0).(*paymentservice.ChargeResult)
	return r, args.Error(1)
}

func (m *mockPayments) Refund(ctx context.Context, req paymentservice.RefundRequest, key string) (*paymentservice.RefundResult, error) {
	args := m.Called(ctx, req, key)
	r, _ := args.Get(0).(*paymentservice.RefundResult)
	return r, args.Error(1)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) Create(ctx context.Context, req bookingservice.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Create(ctx context.Context, rec *domain.PartialCommitRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockLedger) CloseByKey(ctx context.Context, key string, status domain.ReconciliationStatus, at time.Time) (int64, error) {
	args := m.Called(ctx, key, status, at)
	return args.Get(0).(int64), args.Error(1)
}

// memoryLedger журнал в памяти с той же семантикой, что у Postgres: одна запись на ключ
type memoryLedger struct {
	byKey map[string]*domain.PartialCommitRecord
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{byKey: make(map[string]*domain.PartialCommitRecord)}
}

func (l *memoryLedger) Create(_ context.Context, rec *domain.PartialCommitRecord) error {
	existing, ok := l.byKey[rec.IdempotencyKey]
	if !ok {
		stored := *rec
		l.byKey[rec.IdempotencyKey] = &stored
		return nil
	}
	if !existing.IsOpen() {
		return errors.New("record already closed")
	}
	existing.Cause = rec.Cause
	existing.Status = rec.Status
	existing.ResolvedAt = rec.ResolvedAt
	rec.ID = existing.ID
	return nil
}

func (l *memoryLedger) CloseByKey(_ context.Context, key string, status domain.ReconciliationStatus, at time.Time) (int64, error) {
	rec, ok := l.byKey[key]
	if !ok || !rec.IsOpen() {
		return 0, nil
	}
	rec.Status = status
	rec.ResolvedAt = &at
	return 1, nil
}

type mockReloader struct {
	mock.Mock
}

func (m *mockReloader) Reload(ctx context.Context, userID int64) (*models.BookingsView, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*models.BookingsView)
	return v, args.Error(1)
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.Type)
	}
	return out
}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) IncReservationOutcome(outcome string) { m.outcomes = append(m.outcomes, outcome) }
func (m *recordingMetrics) SetDraftsActive(int)                  {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

const userID = int64(7)

type fixture struct {
	uc        *UseCase
	registry  *drafts.Registry
	payments  *mockPayments
	bookings  *mockBookings
	ledger    *mockLedger
	reloader  *mockReloader
	publisher *recordingPublisher
	metrics   *recordingMetrics
}

func newFixture(t *testing.T, compensation Compensation) *fixture {
	t.Helper()
	f := &fixture{
		registry:  drafts.NewRegistry(7*24*time.Hour, nopLogger{}),
		payments:  &mockPayments{},
		bookings:  &mockBookings{},
		ledger:    &mockLedger{},
		reloader:  &mockReloader{},
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}
	f.uc = NewUseCase(f.payments, f.bookings, f.registry, f.ledger, f.reloader, f.publisher,
		f.metrics, compensation, clock.Fixed(now), nopLogger{})
	return f
}

// confirmedDraft проводит черновик до шага CONFIRM: 3 ночи по 2000
func (f *fixture) confirmedDraft(t *testing.T) domain.ReservationDraft {
	t.Helper()
	snap := f.registry.Start(userID, domain.Property{ID: 42, NightlyRate: 2000}, now)

	snap, err := f.registry.Update(snap.Draft.ID, userID, now, func(s *stepper.Stepper) error {
		if err := s.SetDates(date(2025, 6, 5), date(2025, 6, 8), now); err != nil {
			return err
		}
		if err := s.Next(now); err != nil {
			return err
		}
		if err := s.SetAddons(domain.Addons{DeepClean: true}, now); err != nil {
			return err
		}
		return s.Next(now)
	})
	require.NoError(t, err)
	require.Equal(t, stepper.StateConfirm, snap.State)
	return snap.Draft
}

func (f *fixture) snapshot(t *testing.T, draftID string) drafts.Snapshot {
	t.Helper()
	snap, err := f.registry.Get(draftID, userID, now)
	require.NoError(t, err)
	return snap
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func request(draftID string) *Request {
	return &Request{DraftID: draftID, UserID: userID, AccountReference: "acc-1"}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, paymentservice.ChargeRequest{
		OwnerID: userID, AccountReference: "acc-1", Amount: 6000,
	}, draft.IdempotencyKey).Return(&paymentservice.ChargeResult{Settled: true, PaymentID: "pay_1"}, nil)

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(r bookingservice.CreateBookingRequest) bool {
		return r.PropertyID == 42 && r.UserID == userID && r.CheckIn == "2025-06-05" &&
			r.CheckOut == "2025-06-08" && r.DeepClean && !r.ExtraBedding && r.Paid && r.TotalAmount == 6000
	})).Return(&domain.Booking{
		ID: 100, PropertyID: 42, UserID: userID, CheckIn: date(2025, 6, 5), CheckOut: date(2025, 6, 8),
		Paid: true, Status: domain.StatusConfirmed, TotalAmount: 6000,
	}, nil)

	view := &models.BookingsView{Total: 1}
	f.reloader.On("Reload", mock.Anything, userID).Return(view, nil)
	f.ledger.On("CloseByKey", mock.Anything, draft.IdempotencyKey, domain.ReconciliationResolved, now).Return(int64(0), nil)

	resp, err := f.uc.Execute(context.Background(), request(draft.ID))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.Booking.ID)
	assert.Equal(t, "upcoming", resp.Booking.Bucket)
	assert.Same(t, view, resp.Bookings)

	_, err = f.registry.Get(draft.ID, userID, now)
	assert.ErrorIs(t, err, drafts.ErrDraftNotFound)

	assert.Equal(t, []string{events.TypeReservationCreated}, f.publisher.types())
	assert.Equal(t, []string{metrics.OutcomeSucceeded}, f.metrics.outcomes)
	f.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ReloadFailureStillSucceeds(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, mock.Anything).
		Return(&paymentservice.ChargeResult{Settled: true}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 100, UserID: userID, Status: domain.StatusConfirmed, CheckIn: date(2025, 6, 5), CheckOut: date(2025, 6, 8)}, nil)
	f.reloader.On("Reload", mock.Anything, userID).Return(nil, errors.New("booking service down"))
	f.ledger.On("CloseByKey", mock.Anything, draft.IdempotencyKey, domain.ReconciliationResolved, now).
		Return(int64(0), errors.New("db down"))

	resp, err := f.uc.Execute(context.Background(), request(draft.ID))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.Booking.ID)
	assert.Nil(t, resp.Bookings)
}

func TestExecute_PaymentNotSettled(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, draft.IdempotencyKey).
		Return(&paymentservice.ChargeResult{Settled: false}, nil)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	assert.ErrorIs(t, err, ErrPaymentFailed)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	snap := f.snapshot(t, draft.ID)
	assert.Equal(t, stepper.StateConfirm, snap.State)
	assert.ErrorIs(t, snap.LastError, ErrPaymentFailed)
	assert.NotEqual(t, draft.IdempotencyKey, snap.Draft.IdempotencyKey, "no money moved, key is rotated")
	assert.Equal(t, []string{metrics.OutcomePaymentFailed}, f.metrics.outcomes)
}

func TestExecute_PaymentDeclined(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, remote.NewError("payment", 402, "insufficient funds"))

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	assert.ErrorIs(t, err, ErrPaymentFailed)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.NotEqual(t, draft.IdempotencyKey, f.snapshot(t, draft.ID).Draft.IdempotencyKey)
}

func TestExecute_PaymentOutcomeUnknownKeepsKey(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, draft.IdempotencyKey).
		Return(nil, remote.NewError("payment", 0, "connection reset"))

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.ErrorIs(t, err, remote.ErrConnectivity)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	snap := f.snapshot(t, draft.ID)
	assert.Equal(t, stepper.StateConfirm, snap.State)
	assert.Equal(t, draft.IdempotencyKey, snap.Draft.IdempotencyKey, "charge may have settled, key must survive")
}

func TestExecute_PartialCommit(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, draft.IdempotencyKey).
		Return(&paymentservice.ChargeResult{Settled: true, PaymentID: "pay_1"}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(nil, remote.NewError("booking", 409, "dates already taken"))

	var saved *domain.PartialCommitRecord
	f.ledger.On("Create", mock.Anything, mock.AnythingOfType("*domain.PartialCommitRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.PartialCommitRecord) }).
		Return(nil)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialCommit)
	assert.ErrorIs(t, err, remote.ErrConflict)

	var pce *PartialCommitError
	require.True(t, errors.As(err, &pce))
	assert.Equal(t, userID, pce.UserID)
	assert.Equal(t, int64(42), pce.PropertyID)
	assert.Equal(t, int64(6000), pce.Amount)
	assert.Equal(t, draft.IdempotencyKey, pce.IdempotencyKey)
	assert.Equal(t, date(2025, 6, 5), pce.CheckIn)

	require.NotNil(t, saved)
	assert.Equal(t, pce.RecordID, saved.ID)
	assert.Equal(t, domain.ReconciliationOpen, saved.Status)
	assert.Equal(t, "acc-1", saved.AccountReference)

	snap := f.snapshot(t, draft.ID)
	assert.Equal(t, stepper.StateConfirm, snap.State)
	assert.Equal(t, draft.IdempotencyKey, snap.Draft.IdempotencyKey, "retry must reuse the settled key")

	assert.Equal(t, []string{events.TypeReservationPartialCommit}, f.publisher.types())
	assert.Equal(t, []string{metrics.OutcomePartialCommit}, f.metrics.outcomes)
	f.payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	f.reloader.AssertNotCalled(t, "Reload", mock.Anything, mock.Anything)
}

func TestExecute_PartialCommitLedgerFailure(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, mock.Anything).
		Return(&paymentservice.ChargeResult{Settled: true}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, remote.NewError("booking", 500, "boom"))
	f.ledger.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	var pce *PartialCommitError
	require.True(t, errors.As(err, &pce))
	assert.Empty(t, pce.RecordID)
	assert.ErrorIs(t, err, remote.ErrServer)
}

func TestExecute_RetryAfterPartialCommitResolvesLedgerRecord(t *testing.T) {
	f := newFixture(t, CompensationNone)
	ledger := newMemoryLedger()
	f.uc = NewUseCase(f.payments, f.bookings, f.registry, ledger, f.reloader, f.publisher,
		f.metrics, CompensationNone, clock.Fixed(now), nopLogger{})
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, draft.IdempotencyKey).
		Return(&paymentservice.ChargeResult{Settled: true, PaymentID: "pay_1"}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(nil, remote.NewError("booking", 503, "unavailable")).Twice()
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 100, UserID: userID, Status: domain.StatusConfirmed, CheckIn: date(2025, 6, 5), CheckOut: date(2025, 6, 8)}, nil).Once()
	f.reloader.On("Reload", mock.Anything, userID).Return(&models.BookingsView{}, nil)

	recordIDs := make([]string, 0, 2)
	for attempt := 0; attempt < 2; attempt++ {
		_, err := f.uc.Execute(context.Background(), request(draft.ID))
		var pce *PartialCommitError
		require.True(t, errors.As(err, &pce))
		recordIDs = append(recordIDs, pce.RecordID)

		require.Len(t, ledger.byKey, 1, "one record per settled charge")
		assert.True(t, ledger.byKey[draft.IdempotencyKey].IsOpen())
	}
	assert.Equal(t, recordIDs[0], recordIDs[1])

	resp, err := f.uc.Execute(context.Background(), request(draft.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.Booking.ID)

	rec := ledger.byKey[draft.IdempotencyKey]
	assert.Equal(t, domain.ReconciliationResolved, rec.Status)
	require.NotNil(t, rec.ResolvedAt)
	f.payments.AssertNumberOfCalls(t, "Charge", 3)
}

func TestExecute_RefundCompensation(t *testing.T) {
	f := newFixture(t, CompensationRefund)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, draft.IdempotencyKey).
		Return(&paymentservice.ChargeResult{Settled: true}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, remote.NewError("booking", 409, "taken"))
	f.payments.On("Refund", mock.Anything, mock.MatchedBy(func(r paymentservice.RefundRequest) bool {
		return r.Amount == 6000 && r.OwnerID == userID
	}), draft.IdempotencyKey).Return(&paymentservice.RefundResult{Refunded: true, RefundID: "rf_1"}, nil)

	var saved *domain.PartialCommitRecord
	f.ledger.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.PartialCommitRecord) }).
		Return(nil)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	assert.ErrorIs(t, err, ErrReservationRefunded)
	assert.NotErrorIs(t, err, ErrPartialCommit)

	require.NotNil(t, saved)
	assert.Equal(t, domain.ReconciliationRefunded, saved.Status)
	assert.NotNil(t, saved.ResolvedAt)

	snap := f.snapshot(t, draft.ID)
	assert.Equal(t, stepper.StateConfirm, snap.State)
	assert.NotEqual(t, draft.IdempotencyKey, snap.Draft.IdempotencyKey)
	assert.Equal(t, []string{events.TypeReservationRefunded}, f.publisher.types())
	assert.Equal(t, []string{metrics.OutcomeRefunded}, f.metrics.outcomes)
}

func TestExecute_RefundFailureFallsBackToPartialCommit(t *testing.T) {
	f := newFixture(t, CompensationRefund)
	draft := f.confirmedDraft(t)

	f.payments.On("Charge", mock.Anything, mock.Anything, mock.Anything).
		Return(&paymentservice.ChargeResult{Settled: true}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, remote.NewError("booking", 409, "taken"))
	f.payments.On("Refund", mock.Anything, mock.Anything, mock.Anything).Return(nil, remote.NewError("payment", 503, "unavailable"))
	f.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	assert.ErrorIs(t, err, ErrPartialCommit)
	assert.Equal(t, draft.IdempotencyKey, f.snapshot(t, draft.ID).Draft.IdempotencyKey)
}

func TestExecute_NotAtConfirm(t *testing.T) {
	f := newFixture(t, CompensationNone)
	snap := f.registry.Start(userID, domain.Property{ID: 42, NightlyRate: 2000}, now)

	_, err := f.uc.Execute(context.Background(), request(snap.Draft.ID))

	assert.ErrorIs(t, err, ErrNotReady)
	f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DatesExpiredBeforeSubmit(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	// пользователь вернулся к подтверждению на следующий день после заезда
	later := date(2025, 6, 6).Add(12 * time.Hour)
	f.uc.timeProvider = clock.Fixed(later)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))

	var verr *daterules.ValidationError
	assert.True(t, errors.As(err, &verr))
	f.payments.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ForeignDraft(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	_, err := f.uc.Execute(context.Background(), &Request{DraftID: draft.ID, UserID: 99, AccountReference: "acc"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t, CompensationNone)

	tests := []struct {
		name string
		req  *Request
	}{
		{"no draft", &Request{UserID: userID, AccountReference: "acc"}},
		{"no user", &Request{DraftID: "d", AccountReference: "acc"}},
		{"blank account", &Request{DraftID: "d", UserID: userID, AccountReference: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentSubmitChargesOnce(t *testing.T) {
	f := newFixture(t, CompensationNone)
	draft := f.confirmedDraft(t)

	release := make(chan struct{})
	f.payments.On("Charge", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&paymentservice.ChargeResult{Settled: false}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Execute(context.Background(), request(draft.ID))
		done <- err
	}()

	require.Eventually(t, func() bool {
		snap, err := f.registry.Get(draft.ID, userID, now)
		return err == nil && snap.State == stepper.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := f.uc.Execute(context.Background(), request(draft.ID))
	assert.ErrorIs(t, err, ErrNotReady)

	close(release)
	assert.ErrorIs(t, <-done, ErrPaymentFailed)
	f.payments.AssertNumberOfCalls(t, "Charge", 1)
}
