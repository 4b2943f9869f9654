package optimizer

import (
	"bytes"
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 4 << 10

// VersoClient implements ports.Optimizer against the Verso optimization API.
//
// Each call is a single attempt: there is no retry, and the only timeout is
// the one carried by the HTTP client. The client is safe for concurrent use.
type VersoClient struct {
	session  *http.Client
	apiKey   string
	endpoint string
}

func NewVersoClient(endpoint string, apiKey string, timeout time.Duration) (*VersoClient, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("verso endpoint is empty")
	}
	if apiKey == "" {
		return nil, errors.New("verso api key is empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("verso endpoint: %w", err)
	}

	return &VersoClient{
		session:  &http.Client{Timeout: timeout},
		apiKey:   apiKey,
		endpoint: endpoint,
	}, nil
}

func (v *VersoClient) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	u, err := url.Parse(v.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", v.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// Optimize posts the flat request and decodes the optimizer's routes.
func (v *VersoClient) Optimize(ctx context.Context, r domain.Request) (_ *domain.Result, err error) {
	defer obs.Time(ctx, "verso.Optimize")(&err)

	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal verso request: %w", err)
	}

	req, err := v.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	resp, err := v.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verso request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.OptimizerError{
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(b)),
			Command: reproCommand(v.endpoint, payload),
		}
	}

	var result domain.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode verso response: %w", err)
	}

	return &result, nil
}

// reproCommand renders a curl command operators can paste to replay the
// call. The key is left to the shell environment.
func reproCommand(endpoint string, payload []byte) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}

	body := strings.ReplaceAll(string(payload), `'`, `'\''`)
	return fmt.Sprintf(
		`curl -X POST "%s%sapi_key=${VERSO_API_KEY}" -H 'Content-Type: application/json' --data-raw '%s'`,
		endpoint, sep, body,
	)
}
