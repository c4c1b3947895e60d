package cancel_booking

import "errors"

var (
	// ErrConfirmationRequired отмена без явного подтверждения пользователя
	ErrConfirmationRequired = errors.New("cancel_booking: explicit confirmation required")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь пытается отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotActionable бронирование уже началось, завершено или отменено
	ErrNotActionable = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInFlight по бронированию уже выполняется изменение
	ErrInFlight = errors.New("cancel_booking: another change of this booking is in progress")

	// ErrRemote ошибка сервиса бронирований
	ErrRemote = errors.New("cancel_booking: booking service error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
