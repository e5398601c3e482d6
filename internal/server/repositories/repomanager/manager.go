package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hashaudit/internal/dbx"
	"github.com/dmitrijs2005/hashaudit/internal/server/ledger"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/guesses"
	"github.com/dmitrijs2005/hashaudit/internal/server/repositories/hashes"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Hashes(db dbx.DBTX) hashes.Repository
	Guesses(db dbx.DBTX) guesses.Repository
	Requests(db dbx.DBTX) ledger.Ledger
}
