package reconciliation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/reconcile"
)

type ReconcileUseCase interface {
	List(ctx context.Context, req *reconcile.ListRequest) ([]reconcile.RecordResponse, error)
	Resolve(ctx context.Context, req *reconcile.ResolveRequest) (*reconcile.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
