// Package repomanager wires PostgreSQL repository constructors and runs the
// embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/migrations"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/ballots"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/documents"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/flights"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/pageviews"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/requests"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/users"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/votes"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Votes(db dbx.DBTX) votes.Repository {
	return votes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Ballots(db dbx.DBTX) ballots.Repository {
	return ballots.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Requests(db dbx.DBTX) requests.Repository {
	return requests.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Notifications(db dbx.DBTX) notifications.Repository {
	return notifications.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Flights(db dbx.DBTX) flights.Repository {
	return flights.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) PageViews(db dbx.DBTX) pageviews.Repository {
	return pageviews.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
