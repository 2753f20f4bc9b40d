package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the backend when no database is
// configured. WithTx only serializes callers: there is no rollback, so a
// failing fn keeps the writes it already made.
type InMemoryRepositoryManager struct {
	users       *users.InMemoryRepository
	resetTokens *resettokens.InMemoryRepository
	txMu        *sync.Mutex
	inTx        bool
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:       users.NewInMemoryRepository(),
		resetTokens: resettokens.NewInMemoryRepository(),
		txMu:        &sync.Mutex{},
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) ResetTokens() resettokens.Repository {
	return m.resetTokens
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	tx := *m
	tx.inTx = true
	return fn(ctx, &tx)
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
