package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager(t *testing.T) {
	ctx := context.Background()
	var m RepositoryManager = NewInMemoryRepositoryManager()
	defer m.Close()

	u, err := m.Users().Create(ctx, &models.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	err = m.WithTx(ctx, func(ctx context.Context, tx RepositoryManager) error {
		require.NoError(t, tx.ResetTokens().Create(ctx, u.ID, "h", time.Hour))
		return tx.WithTx(ctx, func(ctx context.Context, inner RepositoryManager) error {
			_, err := inner.Users().GetByID(ctx, u.ID)
			return err
		})
	})
	require.NoError(t, err)

	_, err = m.ResetTokens().Find(ctx, "h")
	assert.NoError(t, err, "writes inside WithTx are visible afterwards")

	err = m.WithTx(ctx, func(ctx context.Context, tx RepositoryManager) error { return errors.New("x") })
	assert.EqualError(t, err, "x")
}
