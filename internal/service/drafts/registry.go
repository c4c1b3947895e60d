package drafts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
)

// Snapshot неизменяемый снимок мастера для отдачи наружу
type Snapshot struct {
	State     stepper.State
	Draft     domain.ReservationDraft
	LastError error
}

type entry struct {
	stepper  *stepper.Stepper
	lastSeen time.Time
}

// Registry хранит черновики бронирований в памяти.
// Все операции над мастером выполняются под одной блокировкой,
// поэтому переход в SUBMITTING служит флагом занятости.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	log     Logger
}

func NewRegistry(ttl time.Duration, log Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		log:     log,
	}
}

// Start создает новый черновик для пользователя и объекта
func (r *Registry) Start(userID int64, property domain.Property, now time.Time) Snapshot {
	s := stepper.New(domain.ReservationDraft{
		ID:          uuid.NewString(),
		UserID:      userID,
		PropertyID:  property.ID,
		NightlyRate: property.NightlyRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[s.Draft().ID] = &entry{stepper: s, lastSeen: now}
	r.log.Info("Draft started: draft_id=%s, user_id=%d, property_id=%d", s.Draft().ID, userID, property.ID)

	return snapshotOf(s)
}

// Get возвращает снимок черновика владельца
func (r *Registry) Get(draftID string, userID int64, now time.Time) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(draftID, userID, now)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(e.stepper), nil
}

// Update выполняет fn над мастером под блокировкой реестра.
// Снимок возвращается и при ошибке fn, чтобы вызывающий видел текущий шаг.
func (r *Registry) Update(draftID string, userID int64, now time.Time, fn func(s *stepper.Stepper) error) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(draftID, userID, now)
	if err != nil {
		return Snapshot{}, err
	}

	fnErr := fn(e.stepper)
	return snapshotOf(e.stepper), fnErr
}

// Remove удаляет черновик. Черновик в процессе отправки удалить нельзя.
func (r *Registry) Remove(draftID string, userID int64, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(draftID, userID, now)
	if err != nil {
		return err
	}
	if e.stepper.State() == stepper.StateSubmitting {
		return fmt.Errorf("%w: draft_id=%s", ErrDraftBusy, draftID)
	}

	delete(r.entries, draftID)
	return nil
}

// Discard удаляет черновик без проверок, используется после успешной отправки
func (r *Registry) Discard(draftID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, draftID)
}

// Sweep удаляет черновики, простаивающие дольше ttl. Возвращает число удаленных.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if r.expired(e, now) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Len количество живых черновиков
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Run периодически вычищает просроченные черновики до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := r.Sweep(t); n > 0 {
				r.log.Info("Expired drafts evicted: count=%d", n)
			}
		}
	}
}

func (r *Registry) lookup(draftID string, userID int64, now time.Time) (*entry, error) {
	e, ok := r.entries[draftID]
	if !ok {
		return nil, fmt.Errorf("%w: draft_id=%s", ErrDraftNotFound, draftID)
	}
	if r.expired(e, now) {
		delete(r.entries, draftID)
		return nil, fmt.Errorf("%w: draft_id=%s expired", ErrDraftNotFound, draftID)
	}
	if e.stepper.Draft().UserID != userID {
		return nil, fmt.Errorf("%w: draft_id=%s, user_id=%d", ErrAccessDenied, draftID, userID)
	}

	e.lastSeen = now
	return e, nil
}

// Отправляемый черновик не истекает, иначе результат оплаты будет потерян
func (r *Registry) expired(e *entry, now time.Time) bool {
	if r.ttl <= 0 || e.stepper.State() == stepper.StateSubmitting {
		return false
	}
	return now.Sub(e.lastSeen) > r.ttl
}

func snapshotOf(s *stepper.Stepper) Snapshot {
	return Snapshot{
		State:     s.State(),
		Draft:     s.Draft(),
		LastError: s.LastError(),
	}
}
