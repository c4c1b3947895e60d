package razorpaygateway

import "errors"

var (
	// ErrGateway ошибка вызова Razorpay API
	ErrGateway = errors.New("razorpay gateway: request failed")

	// ErrInvalidResponse ответ без ожидаемых полей
	ErrInvalidResponse = errors.New("razorpay gateway: invalid response")
)
