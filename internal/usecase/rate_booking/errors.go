package rate_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("rate_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь оценивает чужое бронирование
	ErrAccessDenied = errors.New("rate_booking: access denied")

	// ErrNotRateable проживание еще не завершено или бронирование отменено
	ErrNotRateable = errors.New("rate_booking: only past stays can be rated")

	// ErrAlreadyRated бронирование уже оценено
	ErrAlreadyRated = errors.New("rate_booking: booking already rated")

	// ErrRemote ошибка сервиса бронирований
	ErrRemote = errors.New("rate_booking: booking service error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rate_booking: invalid input data")
)
