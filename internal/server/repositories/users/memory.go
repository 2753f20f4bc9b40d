package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps users in a map. It backs the server when no
// database DSN is configured, and service tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    map[string]models.User{},
		byEmail: map[string]string{},
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	u.Email = normalizeEmail(u.Email)
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	u.ID = uuid.NewString()
	u.CreatedAt = r.now().UTC()
	u.UpdatedAt = u.CreatedAt

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}

	cur.Name = user.Name
	cur.PhoneNo = user.PhoneNo
	cur.PasswordHash = user.PasswordHash
	cur.ProfilePhotoURL = user.ProfilePhotoURL
	cur.UpdatedAt = r.now().UTC()
	r.byID[cur.ID] = cur

	user.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *InMemoryRepository) Search(ctx context.Context, query string, excludeID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	result := []models.User{}
	for id, u := range r.byID {
		if id == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(u.Email, q) {
			result = append(result, u)
		}
	}

	// same order as the Postgres query: lower(name), email
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a != b {
			return a < b
		}
		return result[i].Email < result[j].Email
	})
	if len(result) > SearchLimit {
		result = result[:SearchLimit]
	}
	return result, nil
}
