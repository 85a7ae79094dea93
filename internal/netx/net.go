// Package netx holds small networking helpers shared by the worker and CLI.
package netx

import (
	"context"
	"fmt"
	"net/http"
)

// Probe issues a lightweight GET to url and reports whether the endpoint
// answered at all. Any HTTP status counts as online; only transport
// failures count as offline.
func Probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	resp.Body.Close()
	return nil
}
