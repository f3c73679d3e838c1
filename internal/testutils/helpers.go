package testutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// Fetcher answers every call with the same payload or error.
// It records the requested URLs so tests can assert on query building.
type Fetcher struct {
	Payload map[string]any
	Err     error

	mu   sync.Mutex
	urls []string
}

// FetchJSON implements ports.Fetcher.
func (f *Fetcher) FetchJSON(_ context.Context, rawURL string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, rawURL)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Payload, nil
}

// URLs returns the URLs requested so far.
func (f *Fetcher) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// Offline returns a Fetcher whose every call fails as an unreachable upstream.
func Offline() *Fetcher {
	return &Fetcher{Err: errors.Join(domain.ErrRemoteUnavailable, errors.New("connection refused"))}
}

// Returning creates a Fetcher that always answers with payload.
func Returning(payload map[string]any) *Fetcher {
	return &Fetcher{Payload: payload}
}

// StatusServer starts an HTTP server answering every request with status and body.
// It is closed when the test finishes.
func StatusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
