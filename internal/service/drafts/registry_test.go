package drafts

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/stepper"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	now      = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	property = domain.Property{ID: 42, NightlyRate: 2000}
)

func TestStartAndGet(t *testing.T) {
	r := NewRegistry(time.Hour, nopLogger{})

	snap := r.Start(7, property, now)

	assert.Equal(t, stepper.StateDates, snap.State)
	assert.NotEmpty(t, snap.Draft.ID)
	assert.Equal(t, int64(2000), snap.Draft.NightlyRate)

	got, err := r.Get(snap.Draft.ID, 7, now)
	require.NoError(t, err)
	assert.Equal(t, snap.Draft.ID, got.Draft.ID)
}

func TestGet_Errors(t *testing.T) {
	r := NewRegistry(time.Hour, nopLogger{})
	snap := r.Start(7, property, now)

	_, err := r.Get("missing", 7, now)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = r.Get(snap.Draft.ID, 8, now)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_ReturnsSnapshotOnError(t *testing.T) {
	r := NewRegistry(time.Hour, nopLogger{})
	snap := r.Start(7, property, now)

	got, err := r.Update(snap.Draft.ID, 7, now, func(s *stepper.Stepper) error {
		return s.Back()
	})

	assert.ErrorIs(t, err, stepper.ErrIllegalTransition)
	assert.Equal(t, stepper.StateDates, got.State)
}

func TestTTL(t *testing.T) {
	r := NewRegistry(30*time.Minute, nopLogger{})
	snap := r.Start(7, property, now)

	_, err := r.Get(snap.Draft.ID, 7, now.Add(20*time.Minute))
	require.NoError(t, err)

	// Обращение продлевает жизнь черновика
	_, err = r.Get(snap.Draft.ID, 7, now.Add(45*time.Minute))
	require.NoError(t, err)

	_, err = r.Get(snap.Draft.ID, 7, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestSweep_SkipsSubmitting(t *testing.T) {
	r := NewRegistry(time.Minute, nopLogger{})
	idle := r.Start(1, property, now)
	busy := r.Start(2, property, now)

	_, err := r.Update(busy.Draft.ID, 2, now, func(s *stepper.Stepper) error {
		if err := s.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 0, 3), now); err != nil {
			return err
		}
		if err := s.Next(now); err != nil {
			return err
		}
		if err := s.Next(now); err != nil {
			return err
		}
		_, err := s.BeginSubmit(now)
		return err
	})
	require.NoError(t, err)

	removed := r.Sweep(now.Add(time.Hour))

	assert.Equal(t, 1, removed)
	_, err = r.Get(idle.Draft.ID, 1, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = r.Get(busy.Draft.ID, 2, now.Add(time.Hour))
	assert.NoError(t, err)

	// Черновик в отправке нельзя удалить пользователем
	err = r.Remove(busy.Draft.ID, 2, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrDraftBusy)
}

func TestRemoveAndDiscard(t *testing.T) {
	r := NewRegistry(time.Hour, nopLogger{})
	a := r.Start(7, property, now)
	b := r.Start(7, property, now)

	require.NoError(t, r.Remove(a.Draft.ID, 7, now))
	r.Discard(b.Draft.ID)

	assert.Equal(t, 0, r.Len())
}

func TestConcurrentSubmitOnlyOneWins(t *testing.T) {
	r := NewRegistry(time.Hour, nopLogger{})
	snap := r.Start(7, property, now)
	_, err := r.Update(snap.Draft.ID, 7, now, func(s *stepper.Stepper) error {
		if err := s.SetDates(now.AddDate(0, 0, 1), now.AddDate(0, 0, 3), now); err != nil {
			return err
		}
		if err := s.Next(now); err != nil {
			return err
		}
		return s.Next(now)
	})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Update(snap.Draft.ID, 7, now, func(s *stepper.Stepper) error {
				_, err := s.BeginSubmit(now)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, stepper.ErrIllegalTransition):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 9, rejected)
}
