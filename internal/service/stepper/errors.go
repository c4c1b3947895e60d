package stepper

import "errors"

var (
	// ErrIllegalTransition возвращается при переходе, которого нет в таблице переходов
	ErrIllegalTransition = errors.New("stepper: illegal transition")

	// ErrWrongStep возвращается при попытке изменить поля не на своём шаге
	ErrWrongStep = errors.New("stepper: field cannot be edited at this step")
)
