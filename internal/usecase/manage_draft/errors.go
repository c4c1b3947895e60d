package manage_draft

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден в каталоге
	ErrPropertyNotFound = errors.New("manage_draft: property not found")

	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("manage_draft: draft not found")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому пользователю
	ErrAccessDenied = errors.New("manage_draft: access denied")

	// ErrWrongStep возвращается при действии, недоступном на текущем шаге
	ErrWrongStep = errors.New("manage_draft: action not allowed at current step")

	// ErrDraftBusy возвращается, когда черновик в процессе отправки
	ErrDraftBusy = errors.New("manage_draft: draft is being submitted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_draft: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_draft: internal error")
)
