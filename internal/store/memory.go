package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]Record),
		now:     time.Now,
	}
}

func (m *MemoryStore) Put(ctx context.Context, rec Record) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	rec.ID = uuid.New()
	rec.Timestamp = m.now().UTC()

	m.mu.Lock()
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	m.mu.Unlock()
	return rec.ID, nil
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (m *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Record, 0, n)
	for _, id := range slices.Backward(m.order) {
		if len(out) == n {
			break
		}
		out = append(out, m.records[id])
	}
	return out, nil
}

func (m *MemoryStore) Close() {}
