// Package revocation tracks signed-out tokens until they would have expired
// anyway.
package revocation

import (
	"context"
	"time"
)

// Store remembers revoked token IDs and per-user cutoffs.
type Store interface {
	// Revoke marks id as revoked until expires. Past expiries are ignored.
	Revoke(ctx context.Context, id string, expires time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
	// RevokeUser revokes every token of userID issued before the cutoff.
	// The cutoff is kept until expires, when all such tokens have lapsed.
	RevokeUser(ctx context.Context, userID string, before, expires time.Time) error
	// RevokedBefore returns the user's cutoff, or the zero time.
	RevokedBefore(ctx context.Context, userID string) (time.Time, error)
	Close() error
}
