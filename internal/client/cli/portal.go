package cli

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/client/client"
)

// portal is what the commands need from the backend client.
type portal interface {
	Close() error
	LoggedIn() bool
	PublicSettings(ctx context.Context) (*api.PublicSettings, error)
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.User, error)

	Account(ctx context.Context) (*api.Account, error)
	History(ctx context.Context) ([]*api.HistoryEntry, error)
	Transfer(ctx context.Context, toVntID, amount, description string) (*api.Transaction, error)
	AdminAdjust(ctx context.Context, email, amount, description string) (*api.Transaction, error)

	ListVotes(ctx context.Context, voteStatus string) ([]*api.Vote, error)
	CreateVote(ctx context.Context, in *api.CreateVoteRequest) (*api.Vote, error)
	ActivateVote(ctx context.Context, voteID string) (*api.Vote, error)
	CloseVote(ctx context.Context, voteID string) (*api.Vote, error)
	DeleteVote(ctx context.Context, voteID string) error
	CastBallot(ctx context.Context, voteID, option string) (*api.Ballot, error)
	Tally(ctx context.Context, voteID string) (*api.Tally, error)

	SubmitRequest(ctx context.Context, title, description, requestType string) (*api.ServiceRequest, error)
	ListRequests(ctx context.Context) ([]*api.ServiceRequest, error)
	ApproveRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error)
	RejectRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error)

	ListFlights(ctx context.Context) ([]*api.Flight, error)
	CreateFlight(ctx context.Context, f *api.Flight) (*api.Flight, error)
	SetFlightStatus(ctx context.Context, flightID, flightStatus string) error
	PurchaseFlight(ctx context.Context, flightID string) (*api.Transaction, error)

	RequestDocumentUpload(ctx context.Context, name, documentType, notes string) (*api.RequestDocumentUploadResponse, error)
	ListDocuments(ctx context.Context) ([]*api.Document, error)
	DocumentURL(ctx context.Context, documentID string) (string, error)

	LogPageView(ctx context.Context, path string) (string, error)
}

var _ portal = (*client.GRPCClient)(nil)
