package inflight

import (
	"context"
	"fmt"
	"sync"
)

// ReleaseFunc снимает блокировку. Повторный вызов безопасен.
type ReleaseFunc func()

// BookingKey ключ блокировки изменений бронирования
func BookingKey(bookingID int64) string {
	return fmt.Sprintf("booking:%d", bookingID)
}

// MemoryGuard блокировки в памяти процесса, для одного инстанса
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

// Acquire захватывает ключ или возвращает ErrInFlight
func (g *MemoryGuard) Acquire(_ context.Context, key string) (ReleaseFunc, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, fmt.Errorf("%w: key=%s", ErrInFlight, key)
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
