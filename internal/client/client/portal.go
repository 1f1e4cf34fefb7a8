package client

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"google.golang.org/grpc"
)

// portalAPI is the subset of *api.PortalClient the wrapper calls; tests
// replace it with a fake.
type portalAPI interface {
	Ping(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.PingResponse, error)
	GetPublicSettings(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.PublicSettings, error)
	Register(ctx context.Context, in *api.Credentials, opts ...grpc.CallOption) (*api.UserResponse, error)
	Login(ctx context.Context, in *api.Credentials, opts ...grpc.CallOption) (*api.TokenPair, error)
	RefreshToken(ctx context.Context, in *api.RefreshTokenRequest, opts ...grpc.CallOption) (*api.TokenPair, error)
	Logout(ctx context.Context, in *api.RefreshTokenRequest, opts ...grpc.CallOption) (*api.Empty, error)
	Me(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.UserResponse, error)
	GetAccount(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.AccountResponse, error)
	GetHistory(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.HistoryResponse, error)
	Transfer(ctx context.Context, in *api.TransferRequest, opts ...grpc.CallOption) (*api.TransactionResponse, error)
	AdminAdjust(ctx context.Context, in *api.AdminAdjustRequest, opts ...grpc.CallOption) (*api.TransactionResponse, error)
	ListVotes(ctx context.Context, in *api.ListVotesRequest, opts ...grpc.CallOption) (*api.ListVotesResponse, error)
	CreateVote(ctx context.Context, in *api.CreateVoteRequest, opts ...grpc.CallOption) (*api.VoteResponse, error)
	ActivateVote(ctx context.Context, in *api.VoteIDRequest, opts ...grpc.CallOption) (*api.VoteResponse, error)
	CloseVote(ctx context.Context, in *api.VoteIDRequest, opts ...grpc.CallOption) (*api.VoteResponse, error)
	DeleteVote(ctx context.Context, in *api.VoteIDRequest, opts ...grpc.CallOption) (*api.Empty, error)
	CastBallot(ctx context.Context, in *api.CastBallotRequest, opts ...grpc.CallOption) (*api.BallotResponse, error)
	GetTally(ctx context.Context, in *api.VoteIDRequest, opts ...grpc.CallOption) (*api.Tally, error)
	SubmitRequest(ctx context.Context, in *api.SubmitRequestRequest, opts ...grpc.CallOption) (*api.ServiceRequestResponse, error)
	ListRequests(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ListRequestsResponse, error)
	ApproveRequest(ctx context.Context, in *api.DecideRequest, opts ...grpc.CallOption) (*api.DecideResponse, error)
	RejectRequest(ctx context.Context, in *api.DecideRequest, opts ...grpc.CallOption) (*api.DecideResponse, error)
	ListFlights(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ListFlightsResponse, error)
	CreateFlight(ctx context.Context, in *api.Flight, opts ...grpc.CallOption) (*api.FlightResponse, error)
	SetFlightStatus(ctx context.Context, in *api.SetFlightStatusRequest, opts ...grpc.CallOption) (*api.Empty, error)
	PurchaseFlight(ctx context.Context, in *api.PurchaseFlightRequest, opts ...grpc.CallOption) (*api.TransactionResponse, error)
	RequestDocumentUpload(ctx context.Context, in *api.RequestDocumentUploadRequest, opts ...grpc.CallOption) (*api.RequestDocumentUploadResponse, error)
	ListDocuments(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.ListDocumentsResponse, error)
	GetDocumentURL(ctx context.Context, in *api.DocumentURLRequest, opts ...grpc.CallOption) (*api.DocumentURLResponse, error)
	LogPageView(ctx context.Context, in *api.LogPageViewRequest, opts ...grpc.CallOption) (*api.LogPageViewResponse, error)
}

var _ portalAPI = (*api.PortalClient)(nil)
