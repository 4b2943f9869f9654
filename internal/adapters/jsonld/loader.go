package jsonld

import (
	"context"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/piprate/json-gold/ld"
)

const maxContextBytes = 5 << 20

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// ContextLoader fetches remote JSON-LD context documents, consulting a
// ContextCache first. It implements both ports.ContextLoader and
// json-gold's ld.DocumentLoader.
type ContextLoader struct {
	session *http.Client
	cache   ports.ContextCache
	ttl     time.Duration
}

// NewContextLoader builds a loader. cache may be nil.
func NewContextLoader(client *http.Client, cache ports.ContextCache, ttl time.Duration) *ContextLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ContextLoader{
		session: client,
		cache:   cache,
		ttl:     ttl,
	}
}

// Fetch returns the raw document at url.
func (l *ContextLoader) Fetch(ctx context.Context, url string) (_ []byte, err error) {
	defer obs.Time(ctx, "context.Fetch")(&err)

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("fetch context: url is empty")
	}

	// Check the persistent cache before going to the network.
	if l.cache != nil {
		doc, ok, err := l.cache.Get(ctx, url)
		if err != nil {
			log.Warn("context cache read failed", "url", url, "err", err)
		} else if ok {
			return doc, nil
		}
	}

	doc, err := l.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch context %q: %w", url, err)
	}

	if l.cache != nil {
		if err := l.cache.Put(ctx, url, doc, l.ttl); err != nil {
			log.Warn("context cache write failed", "url", url, "err", err)
		}
	}

	return doc, nil
}

func (l *ContextLoader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/ld+json, application/json")

	resp, err := l.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContextBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}
	if !json.Valid(body) {
		return nil, errors.New("document is not valid JSON")
	}

	return body, nil
}

// LoadContext returns the "@context" member of the document at url.
func (l *ContextLoader) LoadContext(ctx context.Context, url string) (any, error) {
	raw, err := l.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode context %q: %w", url, err)
	}

	c, ok := doc["@context"]
	if !ok {
		return nil, fmt.Errorf("decode context %q: document has no @context", url)
	}
	return c, nil
}

// LoadDocument lets json-gold resolve remote contexts through the cache.
func (l *ContextLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := l.Fetch(ctx, u)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}
