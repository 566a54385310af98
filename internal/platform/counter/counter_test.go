package counter

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemoryPool fakes the single upsert-and-return statement Counter
// issues, keeping sequences in a map guarded by a mutex -- enough to
// exercise monotonicity without a live Postgres instance.
type inMemoryPool struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newInMemoryPool() *inMemoryPool {
	return &inMemoryPool{seqs: make(map[string]int64)}
}

type singleValueRow struct{ v int64 }

func (r singleValueRow) Scan(dest ...interface{}) error {
	*(dest[0].(*int64)) = r.v
	return nil
}

func (p *inMemoryPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := args[0].(string)
	p.seqs[name]++
	return singleValueRow{v: p.seqs[name]}
}

func (p *inMemoryPool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := args[0].(string)
	floor := args[1].(int64)
	if floor > p.seqs[name] {
		p.seqs[name] = floor
	}
	return pgconn.CommandTag{}, nil
}

func TestCounter_Next_Monotonic(t *testing.T) {
	c := NewWithPool(newInMemoryPool())

	a, err := c.Next(context.Background(), Job)
	require.NoError(t, err)
	b, err := c.Next(context.Background(), Job)
	require.NoError(t, err)

	assert.Greater(t, b, a)
}

func TestCounter_Next_ConcurrentIsStrictlyIncreasing(t *testing.T) {
	c := NewWithPool(newInMemoryPool())

	const n = 100
	results := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := c.Next(context.Background(), Company)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]struct{}, n)
	for _, v := range results {
		_, dup := seen[v]
		assert.False(t, dup, "value %d minted twice", v)
		seen[v] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestCounter_SyncTo(t *testing.T) {
	pool := newInMemoryPool()
	c := NewWithPool(pool)

	require.NoError(t, c.SyncTo(context.Background(), Company, 1200))
	next, err := c.Next(context.Background(), Company)
	require.NoError(t, err)
	assert.Equal(t, int64(1201), next)

	// SyncTo never lowers an already-advanced sequence.
	require.NoError(t, c.SyncTo(context.Background(), Company, 5))
	next, err = c.Next(context.Background(), Company)
	require.NoError(t, err)
	assert.Equal(t, int64(1202), next)
}
