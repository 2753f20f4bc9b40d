package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revoked IDs in a map. Expired entries are dropped
// lazily on Revoke.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	cutoffs map[string]cutoff
	now     func() time.Time
}

type cutoff struct {
	before  time.Time
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: map[string]time.Time{}, cutoffs: map[string]cutoff{}, now: time.Now}
}

func (s *MemoryStore) Revoke(ctx context.Context, id string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, k)
		}
	}
	if expires.After(now) {
		s.revoked[id] = expires
	}
	return nil
}

func (s *MemoryStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[id]
	return ok && exp.After(s.now()), nil
}

func (s *MemoryStore) RevokeUser(ctx context.Context, userID string, before, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !expires.After(s.now()) {
		return nil
	}
	if c, ok := s.cutoffs[userID]; ok && c.before.After(before) {
		before = c.before
	}
	s.cutoffs[userID] = cutoff{before: before, expires: expires}
	return nil
}

func (s *MemoryStore) RevokedBefore(ctx context.Context, userID string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cutoffs[userID]
	if !ok {
		return time.Time{}, nil
	}
	if !c.expires.After(s.now()) {
		delete(s.cutoffs, userID)
		return time.Time{}, nil
	}
	return c.before, nil
}

func (s *MemoryStore) Close() error { return nil }
