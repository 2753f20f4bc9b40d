package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/dbx"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository works over dbx.DBTX, so it runs equally on *sql.DB
// and inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	query := `
		INSERT INTO reset_tokens (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, tokenHash, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, tokenHash string) (*models.ResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM reset_tokens
		WHERE token_hash = $1
	`
	t := &models.ResetToken{}
	if err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.Expires, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, tokenHash string) error {
	query := `
		DELETE FROM reset_tokens
		WHERE token_hash = $1
	`
	if _, err := r.db.ExecContext(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM reset_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
