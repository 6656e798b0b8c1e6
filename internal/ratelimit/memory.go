package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval — как часто Allow попутно вычищает истёкшие записи.
const DefaultSweepInterval = time.Minute

type record struct {
	count   int
	resetAt time.Time
}

// Memory — in-process хранилище счётчиков.
// Создаётся на старте процесса; истёкшие записи удаляются лениво, при очередном
// Allow, не чаще раза в sweepEvery. Лимиты не разделяются между инстансами:
// для нескольких реплик используйте Redis.
type Memory struct {
	mu         sync.Mutex
	records    map[string]*record
	now        func() time.Time
	sweepEvery time.Duration
	nextSweep  time.Time
}

type MemoryOption func(*Memory)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSweepInterval задаёт период ленивой очистки; <=0 — DefaultSweepInterval.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.sweepEvery = d
		}
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		records:    make(map[string]*record),
		now:        time.Now,
		sweepEvery: DefaultSweepInterval,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.nextSweep = m.now().Add(m.sweepEvery)
	return m
}

// Allow — проверка и инкремент под общим мьютексом, поэтому count не может
// превысить max при конкурентных вызовах.
func (m *Memory) Allow(_ context.Context, key string, max int, window time.Duration) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !now.Before(m.nextSweep) {
		m.sweepLocked(now)
		m.nextSweep = now.Add(m.sweepEvery)
	}

	rec, ok := m.records[key]
	if !ok || now.After(rec.resetAt) {
		m.records[key] = &record{count: 1, resetAt: now.Add(window)}
		return true
	}

	if rec.count < max {
		rec.count++
		return true
	}

	return false
}

// Sweep удаляет истёкшие записи и возвращает их число.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sweepLocked(now)
}

// Len — число живых записей (включая ещё не вычищенные истёкшие).
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

func (m *Memory) sweepLocked(now time.Time) int {
	removed := 0
	for k, rec := range m.records {
		if now.After(rec.resetAt) {
			delete(m.records, k)
			removed++
		}
	}

	return removed
}
