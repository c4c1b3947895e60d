package submit_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("submit_reservation: draft not found")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому пользователю
	ErrAccessDenied = errors.New("submit_reservation: access denied")

	// ErrNotReady возвращается, если черновик не на шаге подтверждения
	ErrNotReady = errors.New("submit_reservation: draft is not ready for submission")

	// ErrPaymentFailed списание не прошло, бронирование не создавалось
	ErrPaymentFailed = errors.New("submit_reservation: payment failed")

	// ErrPaymentUnavailable исход списания неизвестен, ключ идемпотентности сохранен для повтора
	ErrPaymentUnavailable = errors.New("submit_reservation: payment service unavailable")

	// ErrPartialCommit оплата прошла, а бронирование не создано
	ErrPartialCommit = errors.New("submit_reservation: payment settled but reservation failed")

	// ErrReservationRefunded бронирование не создано, оплата возвращена
	ErrReservationRefunded = errors.New("submit_reservation: reservation failed, payment refunded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_reservation: internal error")
)

// PartialCommitError содержит все данные для ручной сверки списания без брони
type PartialCommitError struct {
	RecordID       string // пустой, если запись не удалось сохранить
	UserID         int64
	PropertyID     int64
	Amount         int64
	CheckIn        time.Time
	CheckOut       time.Time
	IdempotencyKey string
	Cause          error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%v: record=%s, user=%d, property=%d, amount=%d, dates=%s..%s, key=%s: %v",
		ErrPartialCommit, e.RecordID, e.UserID, e.PropertyID, e.Amount,
		domain.FormatDate(e.CheckIn), domain.FormatDate(e.CheckOut), e.IdempotencyKey, e.Cause)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Cause
}

func (e *PartialCommitError) Is(target error) bool {
	return target == ErrPartialCommit
}
