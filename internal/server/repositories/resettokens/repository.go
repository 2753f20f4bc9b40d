// Package resettokens stores password reset credentials. Tokens are looked
// up by their SHA-256 hash; the plain token never reaches storage.
package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/server/models"
)

type Repository interface {
	// Create stores a reset token for userID valid for validity from now.
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// Find returns the token with the given hash or common.ErrorNotFound.
	// Expiry is left to the caller.
	Find(ctx context.Context, tokenHash string) (*models.ResetToken, error)

	// Delete removes one token. Deleting a missing token is not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteByUser removes every token of userID.
	DeleteByUser(ctx context.Context, userID string) error
}
