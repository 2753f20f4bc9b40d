package session

import (
	"testing"

	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapUser_DropsExtraFields(t *testing.T) {
	u := models.AuthUser{
		ID: "u1", Name: "Jane", Email: "jane@example.com", PhoneNo: "+1",
		CreatedAt: "c", UpdatedAt: "u", ProfilePhotoURL: "p", Role: "owner",
	}
	assert.Equal(t, models.Profile{
		ID: "u1", Name: "Jane", Email: "jane@example.com", PhoneNo: "+1",
		CreatedAt: "c", UpdatedAt: "u", ProfilePhotoURL: "p",
	}, MapUser(u))
}

func TestDirectory_Lifecycle(t *testing.T) {
	d := NewDirectory()

	_, ok := d.Get()
	assert.False(t, ok)

	d.Sync(&models.AuthUser{ID: "u1", Name: "Jane"})
	p, ok := d.Get()
	require.True(t, ok)
	assert.Equal(t, "Jane", p.Name)

	d.Sync(nil)
	_, ok = d.Get()
	assert.False(t, ok)

	d.Set(models.Profile{ID: "u2"})
	d.Clear()
	_, ok = d.Get()
	assert.False(t, ok)
}

func TestDirectory_GetReturnsCopy(t *testing.T) {
	d := NewDirectory()
	d.Set(models.Profile{Name: "Jane"})

	p, _ := d.Get()
	p.Name = "changed"

	again, _ := d.Get()
	assert.Equal(t, "Jane", again.Name)
}

func TestDirectory_Update(t *testing.T) {
	d := NewDirectory()
	assert.False(t, d.Update(func(p *models.Profile) { p.Name = "x" }))

	d.Set(models.Profile{Name: "Jane"})
	assert.True(t, d.Update(func(p *models.Profile) { p.ProfilePhotoURL = "file:///me.png" }))
	p, _ := d.Get()
	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, "file:///me.png", p.ProfilePhotoURL)
}
