// Package metadata stores small installation-scoped values: the device
// identifier, the auth token, the push subscription endpoint.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Clear wipes all metadata (e.g. on logout).
	Clear(ctx context.Context) error
}
