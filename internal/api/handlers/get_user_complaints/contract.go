package get_user_complaints

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

type ComplaintService interface {
	Complaints(ctx context.Context, userID int64) (*models.ComplaintsView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
