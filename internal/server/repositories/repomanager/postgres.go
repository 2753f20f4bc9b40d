package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/familyaccount/internal/dbx"
	"github.com/dmitrijs2005/familyaccount/internal/server/migrations"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound
// either to the pool or to a running transaction.
type PostgresRepositoryManager struct {
	db   *sql.DB
	q    dbx.DBTX
	inTx bool
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// OpenPostgres connects to dsn through the pgx driver, checks the
// connection and applies pending migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	return m, nil
}

// NewPostgresRepositoryManager wraps an already opened database.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db, q: db}
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.q)
}

func (m *PostgresRepositoryManager) ResetTokens() resettokens.Repository {
	return resettokens.NewPostgresRepository(m.q)
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &PostgresRepositoryManager{db: m.db, q: tx, inTx: true})
	})
}

func (m *PostgresRepositoryManager) Close() error {
	if m.inTx {
		return nil
	}
	return m.db.Close()
}
