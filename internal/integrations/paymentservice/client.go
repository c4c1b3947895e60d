package paymentservice

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

const idempotencyHeader = "Idempotency-Key"

// Client клиент платежного сервиса
type Client struct {
	remote *remote.Client
}

func NewClient(rc *remote.Client) *Client {
	return &Client{remote: rc}
}

// Charge списывает сумму. Повтор с тем же ключом идемпотентности не списывает повторно.
func (c *Client) Charge(ctx context.Context, req ChargeRequest, idempotencyKey string) (*ChargeResult, error) {
	var res ChargeResult
	headers := map[string]string{idempotencyHeader: idempotencyKey}
	if err := c.remote.Call(ctx, "charge", http.MethodPost, "/api/v1/payments/charge", req, headers, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Refund возвращает сумму, списанную по ключу идемпотентности
func (c *Client) Refund(ctx context.Context, req RefundRequest, idempotencyKey string) (*RefundResult, error) {
	var res RefundResult
	headers := map[string]string{idempotencyHeader: idempotencyKey}
	if err := c.remote.Call(ctx, "refund", http.MethodPost, "/api/v1/payments/refund", req, headers, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
