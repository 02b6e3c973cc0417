package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/customers"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, so services can run several of them atomically.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Customers(db dbx.DBTX) customers.Repository
	Notes(db dbx.DBTX) notes.Repository
}
