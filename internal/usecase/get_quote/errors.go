package get_quote

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден в каталоге
	ErrPropertyNotFound = errors.New("get_quote: property not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrRemote ошибка сервиса каталога
	ErrRemote = errors.New("get_quote: catalog service error")
)
