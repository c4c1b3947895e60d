package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// OperatorTokenHeader служебный токен оператора для административных маршрутов
const OperatorTokenHeader = "X-Operator-Token"

const msgOperatorOnly = "доступ только для оператора"

// OperatorAuth пропускает запрос только с совпадающим токеном оператора.
// С пустым токеном все запросы отклоняются.
func OperatorAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(OperatorTokenHeader)
			if got == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				handlers.RespondForbidden(w, msgOperatorOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
