package reconcile

import "errors"

var (
	// ErrRecordNotFound запись сверки не найдена
	ErrRecordNotFound = errors.New("reconcile: record not found")

	// ErrAlreadyClosed запись уже закрыта
	ErrAlreadyClosed = errors.New("reconcile: record already closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reconcile: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile: internal error")
)
