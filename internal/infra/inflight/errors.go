package inflight

import "errors"

var (
	// ErrInFlight по этому ключу уже выполняется изменение
	ErrInFlight = errors.New("inflight: mutation already in progress")

	// ErrGuardUnavailable хранилище блокировок недоступно
	ErrGuardUnavailable = errors.New("inflight: guard storage unavailable")
)
