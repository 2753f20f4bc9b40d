// Package repomanager hands out the backend's repositories and runs groups of
// repository calls atomically.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	ResetTokens() resettokens.Repository

	// WithTx runs fn with a manager whose repositories share one
	// transaction. The transaction commits when fn returns nil. Calling
	// WithTx on the manager passed to fn joins the running transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error

	Close() error
}
