package cache

import (
	"context"
	"database/sql"
	"dfc-optim-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLContextCache is a SQL-backed cache mapping context URLs to documents.
type SQLContextCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLContextCache(db *sql.DB) *SQLContextCache {
	return &SQLContextCache{DB: db, now: time.Now}
}

// Fetch the cached document for url. Expired rows count as misses.
func (s *SQLContextCache) Get(ctx context.Context, url string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "context.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("context cache: db is nil")
	}

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, false, errors.New("get context cache: url must not be empty")
	}

	q := `
	SELECT document
	FROM context_cache
	WHERE url = $1 AND expires_at > $2;
	`

	var doc []byte
	err = s.DB.QueryRowContext(ctx, q, url, s.now().UTC()).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get context cache: query context_cache table: %w", err)
	}

	return doc, true, nil
}

// Store url -> document for ttl.
func (s *SQLContextCache) Put(ctx context.Context, url string, doc []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "context.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("context cache: db is nil")
	}

	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("insert context cache: empty url key")
	}
	if len(doc) == 0 {
		return fmt.Errorf("insert context cache url=%q: empty document", url)
	}

	fetched := s.now().UTC()

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO context_cache (url, document, fetched_at, expires_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (url) DO UPDATE
	SET document = EXCLUDED.document,
		fetched_at = EXCLUDED.fetched_at,
		expires_at = EXCLUDED.expires_at;
	`, url, doc, fetched, fetched.Add(ttl))
	if err != nil {
		return fmt.Errorf("insert context cache url=%q: %w", url, err)
	}

	return nil
}
