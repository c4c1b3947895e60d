package reconcile

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReconciliationRepository журнал частичных фиксаций
type ReconciliationRepository interface {
	List(ctx context.Context, status *domain.ReconciliationStatus, limit, offset uint64) ([]*domain.PartialCommitRecord, error)
	Close(ctx context.Context, id string, status domain.ReconciliationStatus, at time.Time) (*domain.PartialCommitRecord, error)
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
