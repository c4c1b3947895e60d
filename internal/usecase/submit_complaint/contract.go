package submit_complaint

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/complaintservice"
)

// ComplaintServiceClient интерфейс для работы с сервисом жалоб
type ComplaintServiceClient interface {
	Submit(ctx context.Context, req complaintservice.SubmitComplaintRequest) (*domain.Complaint, error)
}

// BookingServiceClient нужен для проверки, что жалоба относится к своему бронированию
type BookingServiceClient interface {
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
