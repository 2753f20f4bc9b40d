package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/dbx"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, name, email, phone_no, password_hash, profile_photo_url)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	u := *user
	u.ID = uuid.NewString()
	u.Email = normalizeEmail(u.Email)

	err := r.db.QueryRowContext(ctx, query,
		u.ID, u.Name, u.Email, u.PhoneNo, u.PasswordHash, u.ProfilePhotoURL).Scan(&u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

const selectUser = `SELECT id, name, email, phone_no, password_hash, profile_photo_url, created_at, updated_at FROM users`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, normalizeEmail(email))
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, arg), user)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET name = $2, phone_no = $3, password_hash = $4, profile_photo_url = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	var updated time.Time
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.PhoneNo, user.PasswordHash, user.ProfilePhotoURL).Scan(&updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.UpdatedAt = updated
	return nil
}

func (r *PostgresRepository) Search(ctx context.Context, query string, excludeID string) ([]models.User, error) {
	q := selectUser + `
		 WHERE (lower(name) LIKE $1 OR email LIKE $1) AND id::text <> $2
		 ORDER BY lower(name), email
		 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, q, "%"+escapeLike(strings.ToLower(query))+"%", excludeID, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *models.User) error {
	return s.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNo, &u.PasswordHash, &u.ProfilePhotoURL, &u.CreatedAt, &u.UpdatedAt)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
