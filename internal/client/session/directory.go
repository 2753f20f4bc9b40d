// Package session holds the signed-in user's profile and the gate that
// decides, on every protected screen entry, whether the stored credential is
// still good.
package session

import (
	"sync"

	"github.com/dmitrijs2005/familyaccount/internal/client/models"
)

// Directory is the in-memory holder of the current user's profile. It is
// process-scoped and never persisted.
type Directory struct {
	mu      sync.RWMutex
	profile *models.Profile
}

func NewDirectory() *Directory {
	return &Directory{}
}

// Get returns a copy of the current profile and whether one is set.
func (d *Directory) Get() (models.Profile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.profile == nil {
		return models.Profile{}, false
	}
	return *d.profile, true
}

func (d *Directory) Set(p models.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = &p
}

func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = nil
}

// Sync replaces the profile with the projection of u. A nil u clears it.
func (d *Directory) Sync(u *models.AuthUser) {
	if u == nil {
		d.Clear()
		return
	}
	d.Set(MapUser(*u))
}

// Update applies fn to the current profile, if any, and stores the result.
// It reports whether a profile was present.
func (d *Directory) Update(fn func(*models.Profile)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.profile == nil {
		return false
	}
	p := *d.profile
	fn(&p)
	d.profile = &p
	return true
}

// MapUser projects the server user onto the fields the client keeps.
func MapUser(u models.AuthUser) models.Profile {
	return models.Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		PhoneNo:         u.PhoneNo,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}
