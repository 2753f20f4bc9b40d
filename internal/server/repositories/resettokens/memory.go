package resettokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	byHash map[string]models.ResetToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byHash: map[string]models.ResetToken{}}
}

func (r *InMemoryRepository) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.byHash[tokenHash] = models.ResetToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: tokenHash,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, tokenHash string) (*models.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byHash[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byHash, tokenHash)
	return nil
}

func (r *InMemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h, t := range r.byHash {
		if t.UserID == userID {
			delete(r.byHash, h)
		}
	}
	return nil
}
