package submit_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
)

// PaymentClient платежный сервис или шлюз Razorpay
type PaymentClient interface {
	Charge(ctx context.Context, req paymentservice.ChargeRequest, idempotencyKey string) (*paymentservice.ChargeResult, error)
	Refund(ctx context.Context, req paymentservice.RefundRequest, idempotencyKey string) (*paymentservice.RefundResult, error)
}

// BookingServiceClient создание бронирования после оплаты
type BookingServiceClient interface {
	Create(ctx context.Context, req bookingservice.CreateBookingRequest) (*domain.Booking, error)
}

// DraftRegistry реестр черновиков
type DraftRegistry interface {
	Update(draftID string, userID int64, now time.Time, fn func(s *stepper.Stepper) error) (drafts.Snapshot, error)
	Discard(draftID string)
	Len() int
}

// ReconciliationRepository журнал частичных фиксаций, одна запись на ключ идемпотентности
type ReconciliationRepository interface {
	Create(ctx context.Context, rec *domain.PartialCommitRecord) error
	CloseByKey(ctx context.Context, idempotencyKey string, status domain.ReconciliationStatus, at time.Time) (int64, error)
}

// BookingsReloader заново строит классифицированный список бронирований
type BookingsReloader interface {
	Reload(ctx context.Context, userID int64) (*models.BookingsView, error)
}

// EventPublisher публикует события жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// MetricsRecorder учитывает исходы оформления
type MetricsRecorder interface {
	IncReservationOutcome(outcome string)
	SetDraftsActive(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
