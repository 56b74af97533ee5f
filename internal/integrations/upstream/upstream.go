// Package upstream holds the HTTP plumbing shared by the LLM integrations:
// the status-aware error type and the bounded JSON round trip.
package upstream

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is applied when an integration is constructed without an
// explicit HTTP client.
const DefaultTimeout = 10 * time.Second

// StatusError captures non-2xx upstream responses with status-aware context.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// DoJSON executes req and returns the response body. Non-2xx statuses become
// a *StatusError carrying up to 4 KiB of the error body; success bodies are
// capped at 1 MiB.
func DoJSON(client *http.Client, req *http.Request, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &StatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
