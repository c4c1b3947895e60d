package complaintservice

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Complaint модель жалобы
type Complaint struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	BookingID   *int64    `json:"bookingId,omitempty"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubmitComplaintRequest запрос на создание жалобы
type SubmitComplaintRequest struct {
	UserID      int64  `json:"userId"`
	BookingID   *int64 `json:"bookingId,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (c *Complaint) ToDomain() *domain.Complaint {
	return &domain.Complaint{
		ID:          c.ID,
		UserID:      c.UserID,
		BookingID:   c.BookingID,
		Description: c.Description,
		Type:        c.Type,
		Status:      domain.ComplaintStatus(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}
