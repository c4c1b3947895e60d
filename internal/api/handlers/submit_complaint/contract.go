package submit_complaint

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	submitComplaint "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_complaint"
)

type SubmitComplaintUseCase interface {
	Execute(ctx context.Context, req *submitComplaint.Request) (*models.ComplaintResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
