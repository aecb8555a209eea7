package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableName = "executions"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
	id        uuid PRIMARY KEY,
	timestamp timestamptz NOT NULL DEFAULT CURRENT_TIMESTAMP,
	commands  integer NOT NULL,
	result    bigint NOT NULL,
	duration  double precision NOT NULL
)`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the executions table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create %s table: %w", tableName, err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, rec Record) (uuid.UUID, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO `+tableName+` (id, timestamp, commands, result, duration)
		 VALUES ($1, CURRENT_TIMESTAMP, $2, $3, $4)
		 RETURNING id::text`,
		uuid.New().String(), rec.Commands, rec.Result, rec.Duration.Seconds(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert execution: %w", err)
	}
	return uuid.Parse(id)
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id::text, timestamp, commands, result, duration FROM `+tableName+` WHERE id = $1`,
		id.String(),
	)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("select execution %s: %w", id, err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id::text, timestamp, commands, result, duration FROM ` + tableName + ` ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec     Record
		id      string
		seconds float64
	)
	if err := row.Scan(&id, &rec.Timestamp, &rec.Commands, &rec.Result, &seconds); err != nil {
		return Record{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Record{}, err
	}
	rec.ID = parsed
	rec.Duration = time.Duration(seconds * float64(time.Second))
	return rec, nil
}
