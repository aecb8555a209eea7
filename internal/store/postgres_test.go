package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database only when POSTGRES_TEST_DSN is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Migrate(ctx))

	id, err := s.Put(ctx, NewRecord(3, 12, 250*time.Millisecond))
	require.NoError(t, err)

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 3, rec.Commands)
	assert.Equal(t, 12, rec.Result)
	assert.InDelta(t, 0.25, rec.Duration.Seconds(), 1e-9)
	assert.False(t, rec.Timestamp.IsZero())

	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	recent, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}
