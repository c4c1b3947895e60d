package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
)

const (
	msgConnectivity   = "сервис временно недоступен, проверьте соединение и повторите попытку"
	msgAuthorization  = "сессия истекла, войдите заново"
	msgRemoteMissing  = "запрошенные данные не найдены"
	msgRemoteConflict = "данные изменились, обновите страницу и повторите попытку"
	msgRemoteServer   = "ошибка на стороне сервиса, повторите попытку позже"
	msgRemoteFailed   = "не удалось выполнить запрос"
)

// RespondRemoteError переводит ошибку удаленного сервиса в ответ пользователю.
// Возвращает false, если err не относится к удаленным вызовам.
func RespondRemoteError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, remote.ErrConnectivity):
		RespondError(w, http.StatusServiceUnavailable, msgConnectivity)
	case errors.Is(err, remote.ErrAuthorization):
		RespondUnauthorized(w, msgAuthorization)
	case errors.Is(err, remote.ErrNotFound):
		RespondNotFound(w, msgRemoteMissing)
	case errors.Is(err, remote.ErrConflict):
		RespondConflict(w, withServerMessage(msgRemoteConflict, err))
	case errors.Is(err, remote.ErrServer):
		RespondError(w, http.StatusBadGateway, msgRemoteServer)
	case errors.Is(err, remote.ErrRequestFailed), errors.Is(err, remote.ErrInvalidResponse):
		RespondError(w, http.StatusBadGateway, withServerMessage(msgRemoteFailed, err))
	default:
		return false
	}
	return true
}

func withServerMessage(fallback string, err error) string {
	if msg := remote.MessageOf(err); msg != "" {
		return fallback + ": " + msg
	}
	return fallback
}
