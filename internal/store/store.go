// Package store persists execution records: one row per evaluated request,
// holding the command count, the unique-point result and how long the
// evaluation took.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("execution record not found")

type Record struct {
	ID        uuid.UUID
	Timestamp time.Time
	Commands  int
	Result    int
	Duration  time.Duration
}

// Store is implemented by MemoryStore and PostgresStore. Put assigns the ID
// and timestamp.
type Store interface {
	Put(ctx context.Context, rec Record) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Close()
}

func NewRecord(commands, result int, duration time.Duration) Record {
	return Record{Commands: commands, Result: result, Duration: duration}
}
