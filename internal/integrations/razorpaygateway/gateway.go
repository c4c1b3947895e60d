package razorpaygateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

const (
	serviceName    = "razorpay"
	statusCaptured = "captured"
)

// PaymentAPI часть Razorpay SDK, которой пользуется шлюз
type PaymentAPI interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Capture(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Gateway списывает оплату через Razorpay.
// accountReference это ID авторизованного платежа из checkout.
type Gateway struct {
	payments PaymentAPI
	currency string
	log      Logger
}

// NewGateway создает шлюз поверх клиента Razorpay SDK
func NewGateway(keyID, keySecret, currency string, log Logger) *Gateway {
	client := razorpay.NewClient(keyID, keySecret)
	return NewGatewayWithAPI(client.Payment, currency, log)
}

func NewGatewayWithAPI(payments PaymentAPI, currency string, log Logger) *Gateway {
	return &Gateway{
		payments: payments,
		currency: currency,
		log:      log,
	}
}

// Charge захватывает авторизованный платеж.
// Повтор с тем же платежом не захватывает его второй раз: уже захваченный платеж считается списанным.
// Отказ Razorpay (BAD_REQUEST) возвращается как remote.ErrRequestFailed, остальные ошибки как ErrGateway.
func (g *Gateway) Charge(ctx context.Context, req paymentservice.ChargeRequest, idempotencyKey string) (*paymentservice.ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := g.payments.Fetch(req.AccountReference, nil, nil)
	if err = responseError(current, err); err != nil {
		g.log.Error("Razorpay fetch failed: payment_id=%s, error=%v", req.AccountReference, err)
		return nil, g.classify("fetch", req.AccountReference, err)
	}
	if status, _ := current["status"].(string); status == statusCaptured {
		id, _ := current["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("%w: fetch response without id", ErrInvalidResponse)
		}
		g.log.Info("Razorpay payment already captured: payment_id=%s, key=%s", id, idempotencyKey)
		return &paymentservice.ChargeResult{Settled: true, PaymentID: id}, nil
	}

	data := map[string]interface{}{
		"currency": g.currency,
		"notes": map[string]interface{}{
			"idempotency_key": idempotencyKey,
			"owner_id":        strconv.FormatInt(req.OwnerID, 10),
		},
	}

	resp, err := g.payments.Capture(req.AccountReference, int(req.Amount), data, nil)
	if err = responseError(resp, err); err != nil {
		g.log.Error("Razorpay capture failed: payment_id=%s, amount=%d, error=%v", req.AccountReference, req.Amount, err)
		return nil, g.classify("capture", req.AccountReference, err)
	}

	status, _ := resp["status"].(string)
	id, _ := resp["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: capture response without id", ErrInvalidResponse)
	}

	g.log.Info("Razorpay capture: payment_id=%s, status=%s", id, status)
	return &paymentservice.ChargeResult{
		Settled:   status == statusCaptured,
		PaymentID: id,
	}, nil
}

// Refund возвращает захваченный платеж полностью
func (g *Gateway) Refund(ctx context.Context, req paymentservice.RefundRequest, idempotencyKey string) (*paymentservice.RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"notes": map[string]interface{}{
			"idempotency_key": idempotencyKey,
			"reason":          req.Reason,
		},
	}

	resp, err := g.payments.Refund(req.AccountReference, int(req.Amount), data, nil)
	if err = responseError(resp, err); err != nil {
		g.log.Error("Razorpay refund failed: payment_id=%s, amount=%d, error=%v", req.AccountReference, req.Amount, err)
		return nil, fmt.Errorf("%w: refund payment_id=%s: %v", ErrGateway, req.AccountReference, err)
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: refund response without id", ErrInvalidResponse)
	}

	return &paymentservice.RefundResult{
		Refunded: true,
		RefundID: id,
	}, nil
}

// responseError достает ошибку из ответа SDK.
// Для BAD_REQUEST_ERROR SDK возвращает тело ошибки вместо error.
func responseError(resp map[string]interface{}, err error) error {
	if err != nil {
		return err
	}
	body, ok := resp["error"].(map[string]interface{})
	if !ok {
		return nil
	}
	description, _ := body["description"].(string)
	return &rzperrors.BadRequestError{Message: description}
}

// classify отделяет явный отказ от ошибки с неизвестным исходом
func (g *Gateway) classify(op, paymentID string, err error) error {
	var badRequest *rzperrors.BadRequestError
	if errors.As(err, &badRequest) {
		return fmt.Errorf("%s payment_id=%s: %w", op, paymentID, remote.NewError(serviceName, http.StatusBadRequest, badRequest.Message))
	}
	return fmt.Errorf("%w: %s payment_id=%s: %v", ErrGateway, op, paymentID, err)
}
