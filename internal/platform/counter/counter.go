// Package counter mints the monotonically increasing integer ids every
// entity in the system carries externally. Advances are a single
// upsert-and-return statement, atomic under Postgres row locking -- no
// in-process locking is required.
package counter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Well-known counter names, one per entity kind.
const (
	Company     = "company_id"
	Job         = "job_id"
	Candidate   = "candidate_id"
	Application = "application_id"
	Favorite    = "favorite_id"
	User        = "user_id"
)

// DBPool is the slice of pgxpool.Pool this package needs, mirroring the
// teacher's analytics_repository.go DBPool seam so tests can swap in a
// mock without a live database.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Counter mints named monotonic sequences backed by a counters table.
type Counter struct {
	pool DBPool
}

func New(pool *pgxpool.Pool) *Counter {
	return &Counter{pool: pool}
}

// NewWithPool builds a Counter against any DBPool implementation (tests).
func NewWithPool(pool DBPool) *Counter {
	return &Counter{pool: pool}
}

// Next advances name and returns the new value. The increment is a
// single statement, so concurrent callers for the same name can never
// observe or mint the same value.
func (c *Counter) Next(ctx context.Context, name string) (int64, error) {
	const query = `
		INSERT INTO counters (name, seq)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`
	var seq int64
	if err := c.pool.QueryRow(ctx, query, name).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// SyncTo sets the sequence for name to max(current, floor). Used after
// bulk imports so subsequently minted ids never collide with imported
// ones.
func (c *Counter) SyncTo(ctx context.Context, name string, floor int64) error {
	const query = `
		INSERT INTO counters (name, seq)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET seq = GREATEST(counters.seq, $2)
	`
	_, err := c.pool.Exec(ctx, query, name, floor)
	return err
}
