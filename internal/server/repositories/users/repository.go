// Package users stores backend accounts. Lookups by e-mail are
// case-insensitive; implementations keep e-mails lower-cased.
package users

import (
	"context"

	"github.com/dmitrijs2005/familyaccount/internal/server/models"
)

// SearchLimit caps the number of users Search returns.
const SearchLimit = 20

type Repository interface {
	// Create inserts user and fills ID, CreatedAt and UpdatedAt. A taken
	// e-mail yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update overwrites the mutable fields of an existing user and bumps
	// UpdatedAt.
	Update(ctx context.Context, user *models.User) error
	// Search returns up to SearchLimit users whose name or e-mail contains
	// query, ignoring case, excluding excludeID.
	Search(ctx context.Context, query string, excludeID string) ([]models.User, error)
}
