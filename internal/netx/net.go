// Package netx provides small network helpers for the CLI.
package netx

import (
	"context"
	"fmt"
	"net/http"
)

// Probe issues a GET request to url and reports nil when the endpoint
// answered at all. Any HTTP status counts as reachable; only transport-level
// failures (DNS, refused connection, cancelled context) return an error.
func Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}
	defer resp.Body.Close()

	return nil
}
