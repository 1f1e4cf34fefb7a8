package grpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/server/auth"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func caller(ctx context.Context) (auth.Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := common.ParseAmount(s)
	if err != nil {
		return decimal.Zero, status.Error(codes.InvalidArgument, err.Error())
	}
	return d, nil
}

// checkID rejects identifiers that are not UUIDs; every id column is UUID.
func checkID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s %q", field, id))
	}
	return nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetPublicSettings(ctx context.Context, req *api.Empty) (*api.PublicSettings, error) {
	p := s.settings.Public()
	return &api.PublicSettings{AppName: p.AppName, AccessMode: p.AccessMode, Pages: p.Pages, MainPage: p.MainPage}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.Credentials) (*api.UserResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Register", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "role", user.Role)
	return &api.UserResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.Credentials) (*api.TokenPair, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Login", err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenPair, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "RefreshToken", err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.RefreshTokenRequest) (*api.Empty, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, "Logout", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Me(ctx context.Context, req *api.Empty) (*api.UserResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Me(ctx, id.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, "Me", err)
	}
	return &api.UserResponse{User: userToAPI(user)}, nil
}

func (s *GRPCServer) GetAccount(ctx context.Context, req *api.Empty) (*api.AccountResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	acc, err := s.ledger.Balance(ctx, id.Email)
	if err != nil {
		return nil, s.toStatus(ctx, "GetAccount", err)
	}
	return &api.AccountResponse{Account: accountToAPI(acc)}, nil
}

func (s *GRPCServer) GetHistory(ctx context.Context, req *api.Empty) (*api.HistoryResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.History(ctx, id.Email)
	if err != nil {
		return nil, s.toStatus(ctx, "GetHistory", err)
	}
	return &api.HistoryResponse{Entries: historyToAPI(entries)}, nil
}

func (s *GRPCServer) Transfer(ctx context.Context, req *api.TransferRequest) (*api.TransactionResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	tx, err := s.ledger.Transfer(ctx, id.Email, req.ToVntID, amount, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, "Transfer", err)
	}
	s.logger.Info(ctx, "Transfer completed", "transaction_id", tx.ID, "from", id.Email, "to_vnt_id", tx.ToVntID)
	return &api.TransactionResponse{Transaction: transactionToAPI(tx)}, nil
}

func (s *GRPCServer) AdminAdjust(ctx context.Context, req *api.AdminAdjustRequest) (*api.TransactionResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	tx, err := s.ledger.AdminAdjust(ctx, id.Email, strings.ToLower(strings.TrimSpace(req.Email)), amount, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, "AdminAdjust", err)
	}
	s.logger.Info(ctx, "Balance adjusted", "transaction_id", tx.ID, "admin", id.Email, "target", req.Email)
	return &api.TransactionResponse{Transaction: transactionToAPI(tx)}, nil
}

func (s *GRPCServer) ListVotes(ctx context.Context, req *api.ListVotesRequest) (*api.ListVotesResponse, error) {
	votes, err := s.votes.List(ctx, models.VoteStatus(req.Status))
	if err != nil {
		return nil, s.toStatus(ctx, "ListVotes", err)
	}
	out := make([]*api.Vote, 0, len(votes))
	for _, v := range votes {
		out = append(out, voteToAPI(v))
	}
	return &api.ListVotesResponse{Votes: out}, nil
}

func (s *GRPCServer) CreateVote(ctx context.Context, req *api.CreateVoteRequest) (*api.VoteResponse, error) {
	vote, err := s.votes.Create(ctx, services.VoteInput{
		Title:       req.Title,
		Description: req.Description,
		VoteType:    models.VoteType(req.VoteType),
		Options:     req.Options,
		StartDate:   timePtr(req.StartDate),
		EndDate:     timePtr(req.EndDate),
	})
	if err != nil {
		return nil, s.toStatus(ctx, "CreateVote", err)
	}
	return &api.VoteResponse{Vote: voteToAPI(vote)}, nil
}

func (s *GRPCServer) ActivateVote(ctx context.Context, req *api.VoteIDRequest) (*api.VoteResponse, error) {
	if err := checkID("vote id", req.VoteID); err != nil {
		return nil, err
	}
	vote, err := s.votes.Activate(ctx, req.VoteID)
	if err != nil {
		return nil, s.toStatus(ctx, "ActivateVote", err)
	}
	return &api.VoteResponse{Vote: voteToAPI(vote)}, nil
}

func (s *GRPCServer) CloseVote(ctx context.Context, req *api.VoteIDRequest) (*api.VoteResponse, error) {
	if err := checkID("vote id", req.VoteID); err != nil {
		return nil, err
	}
	vote, err := s.votes.Close(ctx, req.VoteID)
	if err != nil {
		return nil, s.toStatus(ctx, "CloseVote", err)
	}
	return &api.VoteResponse{Vote: voteToAPI(vote)}, nil
}

func (s *GRPCServer) DeleteVote(ctx context.Context, req *api.VoteIDRequest) (*api.Empty, error) {
	if err := checkID("vote id", req.VoteID); err != nil {
		return nil, err
	}
	if err := s.votes.Delete(ctx, req.VoteID); err != nil {
		return nil, s.toStatus(ctx, "DeleteVote", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) CastBallot(ctx context.Context, req *api.CastBallotRequest) (*api.BallotResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkID("vote id", req.VoteID); err != nil {
		return nil, err
	}
	ballot, err := s.votes.Cast(ctx, id.Email, req.VoteID, req.Option)
	if err != nil {
		return nil, s.toStatus(ctx, "CastBallot", err)
	}
	return &api.BallotResponse{Ballot: ballotToAPI(ballot)}, nil
}

func (s *GRPCServer) GetTally(ctx context.Context, req *api.VoteIDRequest) (*api.Tally, error) {
	if err := checkID("vote id", req.VoteID); err != nil {
		return nil, err
	}
	tally, err := s.votes.Tally(ctx, req.VoteID)
	if err != nil {
		return nil, s.toStatus(ctx, "GetTally", err)
	}
	return tallyToAPI(tally), nil
}

func (s *GRPCServer) SubmitRequest(ctx context.Context, req *api.SubmitRequestRequest) (*api.ServiceRequestResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.requests.Submit(ctx, id.Email, req.Title, req.Description, req.RequestType)
	if err != nil {
		return nil, s.toStatus(ctx, "SubmitRequest", err)
	}
	return &api.ServiceRequestResponse{Request: requestToAPI(r)}, nil
}

func (s *GRPCServer) ListRequests(ctx context.Context, req *api.Empty) (*api.ListRequestsResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.requests.List(ctx, id.Email, id.IsAdmin())
	if err != nil {
		return nil, s.toStatus(ctx, "ListRequests", err)
	}
	out := make([]*api.ServiceRequest, 0, len(list))
	for _, r := range list {
		out = append(out, requestToAPI(r))
	}
	return &api.ListRequestsResponse{Requests: out}, nil
}

func (s *GRPCServer) ApproveRequest(ctx context.Context, req *api.DecideRequest) (*api.DecideResponse, error) {
	return s.decide(ctx, "ApproveRequest", req, s.requests.Approve)
}

func (s *GRPCServer) RejectRequest(ctx context.Context, req *api.DecideRequest) (*api.DecideResponse, error) {
	return s.decide(ctx, "RejectRequest", req, s.requests.Reject)
}

func (s *GRPCServer) decide(ctx context.Context, method string, req *api.DecideRequest,
	fn func(ctx context.Context, id, notes string) (*services.TransitionResult, error)) (*api.DecideResponse, error) {

	if err := checkID("request id", req.RequestID); err != nil {
		return nil, err
	}
	res, err := fn(ctx, req.RequestID, req.Notes)
	if err != nil {
		return nil, s.toStatus(ctx, method, err)
	}
	if res.Outcome == services.OutcomeAppliedNotificationFailed {
		s.logger.Warn(ctx, "status changed but notification not delivered", "request_id", req.RequestID, "notification_id", res.NotificationID)
	}
	return &api.DecideResponse{
		Request:        requestToAPI(res.Request),
		Outcome:        string(res.Outcome),
		NotificationID: res.NotificationID,
	}, nil
}

func (s *GRPCServer) ListFlights(ctx context.Context, req *api.Empty) (*api.ListFlightsResponse, error) {
	flights, err := s.marketplace.ListFlights(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "ListFlights", err)
	}
	out := make([]*api.Flight, 0, len(flights))
	for _, f := range flights {
		out = append(out, flightToAPI(f))
	}
	return &api.ListFlightsResponse{Flights: out}, nil
}

func (s *GRPCServer) CreateFlight(ctx context.Context, req *api.Flight) (*api.FlightResponse, error) {
	price, err := parseAmount(req.Price)
	if err != nil {
		return nil, err
	}
	f := &models.Flight{
		FlightNumber:   req.FlightNumber,
		DepartureCity:  req.DepartureCity,
		ArrivalCity:    req.ArrivalCity,
		ArrivalTime:    timePtr(req.ArrivalTime),
		AircraftModel:  req.AircraftModel,
		Price:          price,
		AvailableSeats: req.AvailableSeats,
		Status:         models.FlightStatus(req.Status),
	}
	if req.DepartureTime != nil {
		f.DepartureTime = req.DepartureTime.AsTime()
	}
	created, err := s.marketplace.CreateFlight(ctx, f)
	if err != nil {
		return nil, s.toStatus(ctx, "CreateFlight", err)
	}
	return &api.FlightResponse{Flight: flightToAPI(created)}, nil
}

func (s *GRPCServer) SetFlightStatus(ctx context.Context, req *api.SetFlightStatusRequest) (*api.Empty, error) {
	if err := checkID("flight id", req.FlightID); err != nil {
		return nil, err
	}
	if err := s.marketplace.SetFlightStatus(ctx, req.FlightID, models.FlightStatus(req.Status)); err != nil {
		return nil, s.toStatus(ctx, "SetFlightStatus", err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) PurchaseFlight(ctx context.Context, req *api.PurchaseFlightRequest) (*api.TransactionResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkID("flight id", req.FlightID); err != nil {
		return nil, err
	}
	tx, err := s.marketplace.Purchase(ctx, id.Email, req.FlightID)
	if err != nil {
		return nil, s.toStatus(ctx, "PurchaseFlight", err)
	}
	return &api.TransactionResponse{Transaction: transactionToAPI(tx)}, nil
}

func (s *GRPCServer) RequestDocumentUpload(ctx context.Context, req *api.RequestDocumentUploadRequest) (*api.RequestDocumentUploadResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.documents.RequestUpload(ctx, id.Email, req.Name, models.DocumentType(req.DocumentType), req.Notes)
	if err != nil {
		return nil, s.toStatus(ctx, "RequestDocumentUpload", err)
	}
	return &api.RequestDocumentUploadResponse{Document: documentToAPI(ticket.Document), UploadURL: ticket.UploadURL}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, req *api.Empty) (*api.ListDocumentsResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.List(ctx, id.Email)
	if err != nil {
		return nil, s.toStatus(ctx, "ListDocuments", err)
	}
	out := make([]*api.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToAPI(d))
	}
	return &api.ListDocumentsResponse{Documents: out}, nil
}

func (s *GRPCServer) GetDocumentURL(ctx context.Context, req *api.DocumentURLRequest) (*api.DocumentURLResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkID("document id", req.DocumentID); err != nil {
		return nil, err
	}
	url, err := s.documents.DownloadURL(ctx, id.Email, id.IsAdmin(), req.DocumentID)
	if err != nil {
		return nil, s.toStatus(ctx, "GetDocumentURL", err)
	}
	return &api.DocumentURLResponse{URL: url}, nil
}

func (s *GRPCServer) LogPageView(ctx context.Context, req *api.LogPageViewRequest) (*api.LogPageViewResponse, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	page, err := s.navigation.LogPageView(ctx, id.Email, req.Path)
	if err != nil {
		return nil, s.toStatus(ctx, "LogPageView", err)
	}
	return &api.LogPageViewResponse{PageName: page}, nil
}
