package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the Postgres schema backing SQLContextCache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createContextCacheQuery := `
	CREATE TABLE IF NOT EXISTS context_cache (
		url TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_context_cache_expires_at
	ON context_cache(expires_at);
	`

	statements := []string{
		createContextCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the context cache for url with a local JSON-LD document.
func SeedFromJSON(ctx context.Context, cache *SQLContextCache, url string, jsonPath string, ttl time.Duration) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("seed context: url cannot be empty")
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed context: read %q: %w", jsonPath, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return fmt.Errorf("seed context: parse json: %w", err)
	}
	if _, ok := doc["@context"]; !ok {
		return fmt.Errorf("seed context: %q has no @context", jsonPath)
	}

	if err := cache.Put(ctx, url, bytes, ttl); err != nil {
		return fmt.Errorf("seed context: %w", err)
	}

	return nil
}
