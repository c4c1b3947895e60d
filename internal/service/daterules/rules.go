package daterules

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Result результат проверки диапазона дат
type Result struct {
	Violations []error
}

// Valid returns true if no rule was violated
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Has returns true if the given violation was reported
func (r Result) Has(violation error) bool {
	for _, v := range r.Violations {
		if errors.Is(v, violation) {
			return true
		}
	}
	return false
}

// Err возвращает *ValidationError со всеми нарушениями или nil
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// Validate проверяет пару заезд/выезд относительно момента now.
// Обе проверки выполняются всегда, чтобы форма могла показать все ошибки сразу.
func Validate(checkIn, checkOut, now time.Time) Result {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Result{Violations: []error{ErrMissingDates}}
	}

	var violations []error

	if !checkOut.After(checkIn) {
		violations = append(violations, ErrInvalidRange)
	}

	if domain.DateOnly(checkIn).Before(domain.DateOnly(now)) {
		violations = append(violations, ErrPastCheckin)
	}

	return Result{Violations: violations}
}

// Nights считает количество ночей как ceil(разница в мс / сутки).
// Округление вверх сглаживает сдвиги из-за DST и часовых поясов в хранимых датах.
func Nights(checkIn, checkOut time.Time) int {
	ms := checkOut.Sub(checkIn).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + domain.MillisPerDay - 1) / domain.MillisPerDay)
}
