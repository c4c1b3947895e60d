package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConnectivity сервис недоступен (нет ответа, статус 0)
	ErrConnectivity = errors.New("remote: service unreachable")

	// ErrAuthorization ответ 401/403
	ErrAuthorization = errors.New("remote: not authorized")

	// ErrNotFound ответ 404
	ErrNotFound = errors.New("remote: not found")

	// ErrConflict ответ 409
	ErrConflict = errors.New("remote: conflict")

	// ErrServer ответ 5xx
	ErrServer = errors.New("remote: server error")

	// ErrRequestFailed любой другой отказ, включая success=false в конверте
	ErrRequestFailed = errors.New("remote: request failed")

	// ErrInvalidResponse тело ответа не удалось разобрать
	ErrInvalidResponse = errors.New("remote: invalid response")

	// ErrInternal ошибка до отправки запроса
	ErrInternal = errors.New("remote: internal error")
)

// Error ошибка удаленного вызова с кодом ответа и сообщением сервера
type Error struct {
	Service string
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: service=%s, status=%d", e.kind, e.Service, e.Status)
	}
	return fmt.Sprintf("%v: service=%s, status=%d, message=%s", e.kind, e.Service, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// KindOf сопоставляет HTTP статус категории ошибки
func KindOf(status int) error {
	switch {
	case status == 0:
		return ErrConnectivity
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrAuthorization
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrRequestFailed
	}
}

// NewError создает ошибку удаленного вызова по статусу
func NewError(service string, status int, message string) *Error {
	return &Error{
		Service: service,
		Status:  status,
		Message: message,
		kind:    KindOf(status),
	}
}

// StatusOf возвращает код ответа удаленной ошибки или 0
func StatusOf(err error) int {
	var re *Error
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// MessageOf возвращает сообщение сервера из удаленной ошибки
func MessageOf(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
