package ports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFetcherContract runs a suite of tests to verify that a Fetcher implementation
// adheres to the defined interface contract. newFetcher must return a fetcher whose
// timeout is shorter than one second.
func RunFetcherContract(t *testing.T, newFetcher func() Fetcher) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"QueryBuilder"}],"q":"` + r.URL.Query().Get("q") + `"}`))
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok?q=moved", http.StatusFound)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>search</body></html>"))
	})
	mux.HandleFunc("/array", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(3 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("Decodes JSON Object", func(t *testing.T) {
		payload, err := newFetcher().FetchJSON(ctx, srv.URL+"/ok?q=fluid")
		require.NoError(t, err)
		assert.Equal(t, "fluid", payload["q"])
		assert.Len(t, payload["results"], 1)
	})

	t.Run("Follows Redirects", func(t *testing.T) {
		payload, err := newFetcher().FetchJSON(ctx, srv.URL+"/redirect")
		require.NoError(t, err)
		assert.Equal(t, "moved", payload["q"])
	})

	failures := map[string]string{
		"Non-200 Status":    "/status",
		"Non-JSON Body":     "/html",
		"Non-Object JSON":   "/array",
		"Timeout":           "/slow",
		"Transport Failure": "",
	}
	for name, path := range failures {
		t.Run(name, func(t *testing.T) {
			target := srv.URL + path
			if path == "" {
				target = "http://127.0.0.1:1/unreachable"
			}
			_, err := newFetcher().FetchJSON(ctx, target)
			assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		})
	}
}
