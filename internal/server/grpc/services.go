package grpc

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/services"
	"github.com/shopspring/decimal"
)

// The handlers depend on these narrow views of the services so tests can
// swap in fakes.

type userSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (*models.User, error)
}

type ledgerSvc interface {
	Balance(ctx context.Context, email string) (*models.Account, error)
	History(ctx context.Context, email string) ([]services.HistoryEntry, error)
	Transfer(ctx context.Context, fromEmail, toVntID string, amount decimal.Decimal, description string) (*models.Transaction, error)
	AdminAdjust(ctx context.Context, adminEmail, targetEmail string, amount decimal.Decimal, description string) (*models.Transaction, error)
}

type voteSvc interface {
	List(ctx context.Context, status models.VoteStatus) ([]*models.Vote, error)
	Create(ctx context.Context, in services.VoteInput) (*models.Vote, error)
	Activate(ctx context.Context, id string) (*models.Vote, error)
	Close(ctx context.Context, id string) (*models.Vote, error)
	Delete(ctx context.Context, id string) error
	Cast(ctx context.Context, email, voteID, option string) (*models.Ballot, error)
	Tally(ctx context.Context, voteID string) (*models.Tally, error)
}

type requestSvc interface {
	Submit(ctx context.Context, email, title, description, requestType string) (*models.ServiceRequest, error)
	List(ctx context.Context, email string, all bool) ([]*models.ServiceRequest, error)
	Approve(ctx context.Context, id, notes string) (*services.TransitionResult, error)
	Reject(ctx context.Context, id, notes string) (*services.TransitionResult, error)
}

type marketplaceSvc interface {
	ListFlights(ctx context.Context) ([]*models.Flight, error)
	CreateFlight(ctx context.Context, f *models.Flight) (*models.Flight, error)
	SetFlightStatus(ctx context.Context, id string, status models.FlightStatus) error
	Purchase(ctx context.Context, email, flightID string) (*models.Transaction, error)
}

type documentSvc interface {
	RequestUpload(ctx context.Context, email, name string, docType models.DocumentType, notes string) (*services.UploadTicket, error)
	List(ctx context.Context, email string) ([]*models.Document, error)
	DownloadURL(ctx context.Context, email string, isAdmin bool, id string) (string, error)
}

type navigationSvc interface {
	LogPageView(ctx context.Context, email, path string) (string, error)
}

type settingsSvc interface {
	Public() services.PublicSettings
	Private() bool
}

// Services bundles what the gRPC server serves.
type Services struct {
	Users       userSvc
	Ledger      ledgerSvc
	Votes       voteSvc
	Requests    requestSvc
	Marketplace marketplaceSvc
	Documents   documentSvc
	Navigation  navigationSvc
	Settings    settingsSvc
}
