package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
)

var violationMessages = []struct {
	err error
	msg string
}{
	{daterules.ErrMissingDates, "укажите даты заезда и выезда"},
	{daterules.ErrInvalidRange, "дата выезда должна быть позже даты заезда"},
	{daterules.ErrPastCheckin, "дата заезда не может быть в прошлом"},
}

// RespondDateViolations отвечает 400 со всеми нарушениями правил дат.
// Возвращает false, если err не ошибка проверки дат.
func RespondDateViolations(w http.ResponseWriter, err error) bool {
	var verr *daterules.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	msgs := make([]string, 0, len(verr.Violations))
	for _, v := range violationMessages {
		if errors.Is(verr, v.err) {
			msgs = append(msgs, v.msg)
		}
	}
	if len(msgs) == 0 {
		msgs = append(msgs, verr.Error())
	}

	RespondBadRequest(w, strings.Join(msgs, "; "))
	return true
}
