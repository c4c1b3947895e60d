package complaintservice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

// Client клиент сервиса жалоб
type Client struct {
	remote *remote.Client
}

func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// GetUserComplaints получает жалобы пользователя
func (c *Client) GetUserComplaints(ctx context.Context, userID int64) ([]*domain.Complaint, error) {
	var list []Complaint
	path := fmt.Sprintf("/api/v1/users/%d/complaints", userID)
	if err := c.remote.Call(ctx, "get_user_complaints", http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}

	complaints := make([]*domain.Complaint, 0, len(list))
	for i := range list {
		complaints = append(complaints, list[i].ToDomain())
	}
	return complaints, nil
}

// Submit создает жалобу
func (c *Client) Submit(ctx context.Context, req SubmitComplaintRequest) (*domain.Complaint, error) {
	var created Complaint
	if err := c.remote.Call(ctx, "submit_complaint", http.MethodPost, "/api/v1/complaints", req, nil, &created); err != nil {
		return nil, err
	}
	return created.ToDomain(), nil
}
