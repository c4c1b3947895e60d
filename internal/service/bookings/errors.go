package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("service: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("service: access denied")

	// ErrRemote возвращается при сбое удаленного сервиса
	ErrRemote = errors.New("service: remote service failed")
)
