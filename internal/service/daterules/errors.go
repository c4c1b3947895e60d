package daterules

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("daterules: checkout must be after checkin")

	// ErrPastCheckin возвращается, когда дата заезда раньше текущего дня
	ErrPastCheckin = errors.New("daterules: checkin is in the past")

	// ErrMissingDates возвращается, когда одна из дат не указана
	ErrMissingDates = errors.New("daterules: checkin and checkout are required")
)

// ValidationError содержит все нарушения правил диапазона дат.
// Поддерживает errors.Is для каждого нарушения.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "invalid date range: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Violations
}
