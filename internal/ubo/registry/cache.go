package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Cache is the single-table persistent keyed store backing Client, mirroring
// the schema the Python predecessor's ensure_ares_cache_schema created.
type Cache struct {
	db *sqlx.DB
}

// NewCache wraps db and idempotently migrates the cache schema.
func NewCache(db *sqlx.DB) (*Cache, error) {
	c := &Cache{db: db}
	if err := c.migrate(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS ares_vr_cache (
	ico TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ares_vr_cache_fetched_at ON ares_vr_cache (fetched_at);
`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return &CacheIOError{Op: "migrate", Cause: err}
	}
	return nil
}

type cacheRow struct {
	Ico       string `db:"ico"`
	Payload   string `db:"payload"`
	FetchedAt string `db:"fetched_at"`
}

// Get returns the cached payload for ico, or ok=false on a cache miss.
func (c *Cache) Get(ctx context.Context, ico string) (*Payload, bool, error) {
	var row cacheRow
	err := c.db.GetContext(ctx, &row, `SELECT ico, payload, fetched_at FROM ares_vr_cache WHERE ico = $1`, ico)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &CacheIOError{Op: "get", Cause: err}
	}

	var payload Payload
	if jErr := json.Unmarshal([]byte(row.Payload), &payload); jErr != nil {
		return nil, false, &CacheIOError{Op: "decode", Cause: jErr}
	}
	return &payload, true, nil
}

// Put atomically upserts payload under ico, stamping the current fetch time.
func (c *Cache) Put(ctx context.Context, ico string, payload *Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return &CacheIOError{Op: "encode", Cause: err}
	}

	const upsert = `
INSERT INTO ares_vr_cache (ico, payload, fetched_at)
VALUES ($1, $2, $3)
ON CONFLICT (ico) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
`
	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := c.db.ExecContext(ctx, upsert, ico, string(raw), fetchedAt); err != nil {
		return &CacheIOError{Op: "put", Cause: err}
	}
	return nil
}

// Delete removes a cached entry, if any, so the next Get misses.
func (c *Cache) Delete(ctx context.Context, ico string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM ares_vr_cache WHERE ico = $1`, ico); err != nil {
		return &CacheIOError{Op: "delete", Cause: err}
	}
	return nil
}

// CacheIOError wraps a storage-layer failure; fatal to the calling resolve.
type CacheIOError struct {
	Op    string
	Cause error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("registry cache: %s: %v", e.Op, e.Cause)
}

func (e *CacheIOError) Unwrap() error { return e.Cause }
