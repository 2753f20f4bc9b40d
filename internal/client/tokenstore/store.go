// Package tokenstore is the client's Credential Store: it owns the single
// opaque bearer token and is the only component that persists it.
package tokenstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/familyaccount/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/familyaccount/internal/common"
)

// Store holds at most one bearer token. Get returns "" when none is stored.
// No validation of the token format is performed.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore persists the token in the local metadata table under
// common.TokenKey, so it survives restarts until Clear is called.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(repo metadata.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, common.TokenKey)
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenKey, token)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenKey)
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
