package catalogservice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

// Client клиент каталога объектов
type Client struct {
	remote *remote.Client
}

func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// GetProperty получает объект по ID
func (c *Client) GetProperty(ctx context.Context, propertyID int64) (*domain.Property, error) {
	var p Property
	path := fmt.Sprintf("/api/v1/properties/%d", propertyID)
	if err := c.remote.Call(ctx, "get_property", http.MethodGet, path, nil, nil, &p); err != nil {
		return nil, err
	}
	return p.ToDomain(), nil
}
