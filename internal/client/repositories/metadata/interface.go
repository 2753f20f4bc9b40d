// Package metadata persists small client-side key/value settings in the local
// SQLite database. The Credential Store keeps the bearer token here.
package metadata

import (
	"context"
)

// Repository is a durable string key/value table.
// Get of an absent key returns ("", nil).
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
