package gateway

import (
	"context"
	"time"

	"github.com/openfoodshare/foodgate/internal/client"
	"github.com/openfoodshare/foodgate/internal/logger"
	"github.com/openfoodshare/foodgate/pkg/tabular"
)

// Gateway mediates all store access: TTL-cached reads and transactional
// writes. It transports caller-supplied values only — no validation beyond
// type coercion, no referential-integrity enforcement.
type Gateway struct {
	src   client.Source
	cache *Cache
}

func New(src client.Source, ttl time.Duration) *Gateway {
	return &Gateway{
		src:   src,
		cache: NewCache(ttl),
	}
}

// Read executes a read-only query with positional bind parameters and
// returns the tabular result. Results are served from the cache within the
// TTL window without a store round-trip; a miss or expiry refreshes the
// entry. An empty result is a valid table, not an error.
func (g *Gateway) Read(ctx context.Context, query string, params ...any) (*tabular.Table, error) {
	if t, ok := g.cache.Get(query, params); ok {
		logger.LogCacheEvent("hit", query)
		return t, nil
	}
	logger.LogCacheEvent("miss", query)

	db, release, err := g.src.Acquire(ctx)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer release()

	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		logger.LogDatabaseOperation("SELECT", query, 0, err)
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	t, err := tabular.Scan(rows)
	if err != nil {
		logger.LogDatabaseOperation("SELECT", query, 0, err)
		return nil, &QueryError{Query: query, Err: err}
	}

	logger.LogDatabaseOperation("SELECT", query, int64(len(t.Rows)), nil)
	g.cache.Put(query, params, t)
	return t, nil
}

// Write executes a single parameterized mutation in its own transaction and
// returns the number of rows affected.
func (g *Gateway) Write(ctx context.Context, stmt string, params ...any) (int64, error) {
	return g.WriteBatch(ctx, stmt, [][]any{params})
}

// WriteBatch executes one statement once per parameter tuple inside a
// single transaction. All tuples commit together; any failure rolls the
// whole batch back and the store is left unchanged. Cached reads are not
// invalidated — they age out on their own.
func (g *Gateway) WriteBatch(ctx context.Context, stmt string, batch [][]any) (int64, error) {
	db, release, err := g.src.Acquire(ctx)
	if err != nil {
		return 0, &ConnectionError{Err: err}
	}
	defer release()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &MutationError{Stmt: stmt, Err: err}
	}

	var affected int64
	for _, params := range batch {
		res, err := tx.ExecContext(ctx, stmt, params...)
		if err != nil {
			tx.Rollback()
			logger.LogDatabaseOperation("WRITE", stmt, 0, err)
			return 0, &MutationError{Stmt: stmt, Err: err}
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += n
		}
	}

	if err := tx.Commit(); err != nil {
		logger.LogDatabaseOperation("WRITE", stmt, 0, err)
		return 0, &MutationError{Stmt: stmt, Err: err}
	}

	logger.LogDatabaseOperation("WRITE", stmt, affected, nil)
	return affected, nil
}

// Ping verifies the store is reachable with the configured credentials.
func (g *Gateway) Ping(ctx context.Context) error {
	_, release, err := g.src.Acquire(ctx)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	release()
	return nil
}

// CacheStats exposes the read-cache counters.
func (g *Gateway) CacheStats() CacheStats {
	return g.cache.Stats()
}
