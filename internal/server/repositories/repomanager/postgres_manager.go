// Package repomanager wires repositories to their PostgreSQL implementations
// and runs embedded goose migrations on startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/ledger"
	"github.com/dmitrijs2005/hashaudit/internal/server/migrations"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/guesses"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/hashes"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Hashes(db dbx.DBTX) hashes.Repository {
	return hashes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Guesses(db dbx.DBTX) guesses.Repository {
	return guesses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Requests(db dbx.DBTX) ledger.Ledger {
	return ledger.NewPostgresLedger(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
