package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingServiceClient интерфейс клиента сервиса бронирований
type BookingServiceClient interface {
	GetUserBookings(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// ComplaintServiceClient интерфейс клиента сервиса жалоб
type ComplaintServiceClient interface {
	GetUserComplaints(ctx context.Context, userID int64) ([]*domain.Complaint, error)
}

// MetricsRecorder учитывает результаты классификации
type MetricsRecorder interface {
	AddClassified(upcoming, current, past int)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
