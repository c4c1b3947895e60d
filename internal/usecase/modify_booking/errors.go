package modify_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("modify_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь пытается изменить чужое бронирование
	ErrAccessDenied = errors.New("modify_booking: access denied")

	// ErrNotActionable бронирование уже началось, завершено или отменено
	ErrNotActionable = errors.New("modify_booking: booking cannot be modified")

	// ErrInFlight по бронированию уже выполняется изменение
	ErrInFlight = errors.New("modify_booking: another change of this booking is in progress")

	// ErrRemote ошибка сервиса бронирований
	ErrRemote = errors.New("modify_booking: booking service error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_booking: internal error")
)
