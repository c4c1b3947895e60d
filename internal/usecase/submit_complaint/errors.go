package submit_complaint

import "errors"

var (
	// ErrBookingNotFound жалоба ссылается на несуществующее бронирование
	ErrBookingNotFound = errors.New("submit_complaint: booking not found")

	// ErrAccessDenied жалоба ссылается на чужое бронирование
	ErrAccessDenied = errors.New("submit_complaint: access denied")

	// ErrRemote ошибка удаленного сервиса
	ErrRemote = errors.New("submit_complaint: remote service error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_complaint: invalid input data")
)
