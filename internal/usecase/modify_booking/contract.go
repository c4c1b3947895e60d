package modify_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// BookingServiceClient интерфейс для работы с сервисом бронирований
type BookingServiceClient interface {
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Modify(ctx context.Context, req bookingservice.ModifyBookingRequest) (*domain.Booking, error)
}

// InFlightGuard не дает запустить два изменения одного бронирования одновременно
type InFlightGuard interface {
	Acquire(ctx context.Context, key string) (inflight.ReleaseFunc, error)
}

// BookingsReloader заново строит классифицированный список бронирований
type BookingsReloader interface {
	Reload(ctx context.Context, userID int64) (*models.BookingsView, error)
}

// EventPublisher публикует события жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
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
