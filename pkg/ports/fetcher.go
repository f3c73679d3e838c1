package ports

import "context"

// Fetcher performs a single outbound GET request and decodes a JSON object body.
// Every failure (transport, timeout, non-200, non-JSON) must wrap domain.ErrRemoteUnavailable.
type Fetcher interface {
	FetchJSON(ctx context.Context, rawURL string) (map[string]any, error)
}
