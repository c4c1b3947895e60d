package stepper

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/daterules"
	"github.com/m04kA/SMC-ReservationService/internal/service/pricing"
)

// State шаг оформления бронирования
type State string

const (
	StateDates      State = "DATES"
	StateAddons     State = "ADDONS"
	StateConfirm    State = "CONFIRM"
	StateSubmitting State = "SUBMITTING"
	StateDone       State = "DONE"
)

// Event событие, переводящее мастер между шагами
type Event string

const (
	EventNext    Event = "next"
	EventBack    Event = "back"
	EventSubmit  Event = "submit"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
)

// transitions полная таблица допустимых переходов.
// Всё, чего здесь нет, запрещено. Отмена удаляет черновик из реестра целиком (drafts.Registry.Remove).
var transitions = map[State]map[Event]State{
	StateDates: {
		EventNext: StateAddons,
	},
	StateAddons: {
		EventNext: StateConfirm,
		EventBack: StateDates,
	},
	StateConfirm: {
		EventSubmit: StateSubmitting,
		EventBack:   StateAddons,
	},
	StateSubmitting: {
		EventSucceed: StateDone,
		EventFail:    StateConfirm,
	},
}

// Stepper конечный автомат мастера бронирования (Даты -> Опции -> Подтверждение).
// Не потокобезопасен: синхронизацией занимается владелец (реестр черновиков).
type Stepper struct {
	state   State
	draft   domain.ReservationDraft
	lastErr error
}

// New создает мастер в начальном шаге DATES
func New(draft domain.ReservationDraft) *Stepper {
	if draft.IdempotencyKey == "" {
		draft.IdempotencyKey = uuid.NewString()
	}
	return &Stepper{
		state: StateDates,
		draft: draft,
	}
}

// State возвращает текущий шаг
func (s *Stepper) State() State {
	return s.state
}

// Draft возвращает копию черновика
func (s *Stepper) Draft() domain.ReservationDraft {
	return s.draft
}

// LastError возвращает последнюю ошибку перехода (валидация или отправка)
func (s *Stepper) LastError() error {
	return s.lastErr
}

// CanFire проверяет, есть ли переход для события из текущего шага
func (s *Stepper) CanFire(ev Event) bool {
	_, ok := transitions[s.state][ev]
	return ok
}

func (s *Stepper) fire(ev Event) error {
	next, ok := transitions[s.state][ev]
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrIllegalTransition, ev, s.state)
	}
	s.state = next
	return nil
}

// SetDates сохраняет даты. Разрешено только на шаге DATES.
func (s *Stepper) SetDates(checkIn, checkOut time.Time, now time.Time) error {
	if s.state != StateDates {
		return fmt.Errorf("%w: dates at %s", ErrWrongStep, s.state)
	}
	s.draft.CheckIn = checkIn
	s.draft.CheckOut = checkOut
	s.draft.UpdatedAt = now
	return nil
}

// SetAddons сохраняет доп. опции. Разрешено только на шаге ADDONS.
func (s *Stepper) SetAddons(addons domain.Addons, now time.Time) error {
	if s.state != StateAddons {
		return fmt.Errorf("%w: addons at %s", ErrWrongStep, s.state)
	}
	s.draft.Addons = addons
	s.draft.UpdatedAt = now
	return nil
}

// Next переводит мастер вперёд.
// DATES -> ADDONS только при успешной проверке дат, иначе шаг не меняется.
func (s *Stepper) Next(now time.Time) error {
	if !s.CanFire(EventNext) {
		return s.fire(EventNext)
	}

	if s.state == StateDates {
		if err := s.validateDates(now); err != nil {
			return err
		}
		s.applyQuote()
	}

	s.lastErr = nil
	return s.fire(EventNext)
}

// Back переводит мастер на шаг назад, введённые значения сохраняются
func (s *Stepper) Back() error {
	return s.fire(EventBack)
}

// BeginSubmit переводит CONFIRM -> SUBMITTING и возвращает снимок черновика.
// Даты повторно проверяются на момент отправки.
func (s *Stepper) BeginSubmit(now time.Time) (domain.ReservationDraft, error) {
	if !s.CanFire(EventSubmit) {
		return domain.ReservationDraft{}, s.fire(EventSubmit)
	}

	if err := s.validateDates(now); err != nil {
		return domain.ReservationDraft{}, err
	}
	s.applyQuote()

	s.lastErr = nil
	if err := s.fire(EventSubmit); err != nil {
		return domain.ReservationDraft{}, err
	}
	return s.draft, nil
}

// CompleteSubmit SUBMITTING -> DONE
func (s *Stepper) CompleteSubmit() error {
	return s.fire(EventSucceed)
}

// FailSubmit SUBMITTING -> CONFIRM с сохранением ошибки.
// rotateKey выдаёт новый ключ идемпотентности, если списания точно не было.
func (s *Stepper) FailSubmit(cause error, rotateKey bool) error {
	if err := s.fire(EventFail); err != nil {
		return err
	}
	s.lastErr = cause
	if rotateKey {
		s.draft.IdempotencyKey = uuid.NewString()
	}
	return nil
}

func (s *Stepper) validateDates(now time.Time) error {
	if err := daterules.Validate(s.draft.CheckIn, s.draft.CheckOut, now).Err(); err != nil {
		s.lastErr = err
		return err
	}
	return nil
}

func (s *Stepper) applyQuote() {
	q := pricing.QuoteFor(s.draft.NightlyRate, s.draft.CheckIn, s.draft.CheckOut, s.draft.Addons)
	s.draft.Nights = q.Nights
	s.draft.Total = q.Total
}
