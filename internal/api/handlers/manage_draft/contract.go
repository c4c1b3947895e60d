package manage_draft

import (
	"context"

	manageDraft "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_draft"
)

type ManageDraftUseCase interface {
	Start(ctx context.Context, req *manageDraft.StartRequest) (*manageDraft.Response, error)
	Get(ctx context.Context, draftID string, userID int64) (*manageDraft.Response, error)
	SetDates(ctx context.Context, req *manageDraft.DatesRequest) (*manageDraft.Response, error)
	SetAddons(ctx context.Context, req *manageDraft.AddonsRequest) (*manageDraft.Response, error)
	Back(ctx context.Context, draftID string, userID int64) (*manageDraft.Response, error)
	Abort(ctx context.Context, draftID string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
