package rate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
)

// BookingServiceClient интерфейс для работы с сервисом бронирований
type BookingServiceClient interface {
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Rate(ctx context.Context, bookingID int64, req bookingservice.RateBookingRequest) error
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
