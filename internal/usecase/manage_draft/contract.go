package manage_draft

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
)

// CatalogClient интерфейс клиента каталога объектов
type CatalogClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*domain.Property, error)
}

// DraftRegistry реестр черновиков
type DraftRegistry interface {
	Start(userID int64, property domain.Property, now time.Time) drafts.Snapshot
	Get(draftID string, userID int64, now time.Time) (drafts.Snapshot, error)
	Update(draftID string, userID int64, now time.Time, fn func(s *stepper.Stepper) error) (drafts.Snapshot, error)
	Remove(draftID string, userID int64, now time.Time) error
	Len() int
}

// MetricsRecorder учитывает число живых черновиков
type MetricsRecorder interface {
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
