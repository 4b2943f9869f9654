package ports

import (
	"context"
	"time"
)

// Port: a boundary for caching remote JSON-LD context documents by URL.
type ContextCache interface {
	// Return the cached document and whether it was found and fresh.
	Get(ctx context.Context, url string) ([]byte, bool, error)
	// Store a document for ttl.
	Put(ctx context.Context, url string, doc []byte, ttl time.Duration) error
}

// Contract for retrieving the vocabulary context used during reconstruction.
type ContextLoader interface {
	// Return the "@context" value of the document at url.
	LoadContext(ctx context.Context, url string) (any, error)
}
