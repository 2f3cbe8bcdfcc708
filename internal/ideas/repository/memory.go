package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
)

// MemoryRepo keeps every session's ideas in one process-local slice.
// A single mutex serializes operations, so each List/Toggle/Delete is atomic.
type MemoryRepo struct {
	mu    sync.Mutex
	opts  Options
	items []ideas.SavedIdea
}

func NewMemoryRepo(opts Options) *MemoryRepo {
	return &MemoryRepo{opts: opts.withDefaults()}
}

func (m *MemoryRepo) evictLocked(now time.Time) int {
	var n int
	m.items, n = ideas.Evict(m.items, now, m.opts.TTL)
	return n
}

func (m *MemoryRepo) List(_ context.Context, sessionID string, now time.Time) (ideas.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := m.evictLocked(now)
	return ideas.Result{Ideas: ideas.Session(m.items, sessionID), Expired: expired}, nil
}

func (m *MemoryRepo) Toggle(_ context.Context, sessionID string, idea ideas.SavedIdea, now time.Time) (ideas.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := m.evictLocked(now)
	out, res, err := ideas.Toggle(m.items, sessionID, idea, now, m.opts.Capacity)
	if err != nil {
		return ideas.Result{}, err
	}
	m.items = out
	res.Expired = expired
	return res, nil
}

func (m *MemoryRepo) Delete(_ context.Context, sessionID, ideaID string, now time.Time) (ideas.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := m.evictLocked(now)
	var removed bool
	m.items, removed = ideas.Remove(m.items, sessionID, ideaID)
	return ideas.Result{Ideas: ideas.Session(m.items, sessionID), Removed: removed, Expired: expired}, nil
}

func (m *MemoryRepo) Sweep(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictLocked(now), nil
}

// Len reports how many ideas are stored across all sessions.
func (m *MemoryRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
