package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/citizenportal/internal/dbx"
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
)

// RepositoryManager builds repositories bound to a DBTX, so a service can use
// the same repositories on a pool or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Votes(db dbx.DBTX) votes.Repository
	Ballots(db dbx.DBTX) ballots.Repository
	Requests(db dbx.DBTX) requests.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	Documents(db dbx.DBTX) documents.Repository
	Flights(db dbx.DBTX) flights.Repository
	PageViews(db dbx.DBTX) pageviews.Repository
}
