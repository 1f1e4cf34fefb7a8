package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const defaultTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      portalAPI
	timeout     time.Duration

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

// LoggedIn reports whether the client holds a session.
func (s *GRPCClient) LoggedIn() bool {
	_, refresh := s.tokens()
	return refresh != ""
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refresh == "" {
			return err
		}

		resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.setTokens(resp.AccessToken, resp.RefreshToken)

		// retry once with the new access token
		return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)

	}

	return nil
}

func NewPortalClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewPortalClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.PermissionDenied:
		kind = ErrForbidden
	case codes.NotFound:
		kind = ErrNotFound
	case codes.AlreadyExists:
		kind = ErrConflict
	case codes.InvalidArgument:
		kind = ErrInvalidInput
	case codes.FailedPrecondition:
		kind = ErrRejected
	case codes.ResourceExhausted:
		kind = ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return &RPCError{Kind: kind, Status: st}
}

// call runs fn under the client's timeout and maps its error.
func call[Resp any](ctx context.Context, s *GRPCClient, fn func(ctx context.Context) (*Resp, error)) (*Resp, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := fn(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.PingResponse, error) {
		return s.client.Ping(ctx, &api.Empty{})
	})
	if err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) PublicSettings(ctx context.Context) (*api.PublicSettings, error) {
	return call(ctx, s, func(ctx context.Context) (*api.PublicSettings, error) {
		return s.client.GetPublicSettings(ctx, &api.Empty{})
	})
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.UserResponse, error) {
		return s.client.Register(ctx, &api.Credentials{Email: email, Password: password})
	})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) error {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.TokenPair, error) {
		return s.client.Login(ctx, &api.Credentials{Email: email, Password: password})
	})
	if err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout revokes the refresh token and forgets both tokens, even when the
// server cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.tokens()
	s.setTokens("", "")
	if refresh == "" {
		return nil
	}
	_, err := call(ctx, s, func(ctx context.Context) (*api.Empty, error) {
		return s.client.Logout(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	})
	return err
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.UserResponse, error) {
		return s.client.Me(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *GRPCClient) Account(ctx context.Context) (*api.Account, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.AccountResponse, error) {
		return s.client.GetAccount(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.Account, nil
}

func (s *GRPCClient) History(ctx context.Context) ([]*api.HistoryEntry, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.HistoryResponse, error) {
		return s.client.GetHistory(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) Transfer(ctx context.Context, toVntID, amount, description string) (*api.Transaction, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.TransactionResponse, error) {
		return s.client.Transfer(ctx, &api.TransferRequest{ToVntID: toVntID, Amount: amount, Description: description})
	})
	if err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (s *GRPCClient) AdminAdjust(ctx context.Context, email, amount, description string) (*api.Transaction, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.TransactionResponse, error) {
		return s.client.AdminAdjust(ctx, &api.AdminAdjustRequest{Email: email, Amount: amount, Description: description})
	})
	if err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (s *GRPCClient) ListVotes(ctx context.Context, voteStatus string) ([]*api.Vote, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.ListVotesResponse, error) {
		return s.client.ListVotes(ctx, &api.ListVotesRequest{Status: voteStatus})
	})
	if err != nil {
		return nil, err
	}
	return resp.Votes, nil
}

func (s *GRPCClient) CreateVote(ctx context.Context, in *api.CreateVoteRequest) (*api.Vote, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.VoteResponse, error) {
		return s.client.CreateVote(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	return resp.Vote, nil
}

func (s *GRPCClient) ActivateVote(ctx context.Context, voteID string) (*api.Vote, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.VoteResponse, error) {
		return s.client.ActivateVote(ctx, &api.VoteIDRequest{VoteID: voteID})
	})
	if err != nil {
		return nil, err
	}
	return resp.Vote, nil
}

func (s *GRPCClient) CloseVote(ctx context.Context, voteID string) (*api.Vote, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.VoteResponse, error) {
		return s.client.CloseVote(ctx, &api.VoteIDRequest{VoteID: voteID})
	})
	if err != nil {
		return nil, err
	}
	return resp.Vote, nil
}

func (s *GRPCClient) DeleteVote(ctx context.Context, voteID string) error {
	_, err := call(ctx, s, func(ctx context.Context) (*api.Empty, error) {
		return s.client.DeleteVote(ctx, &api.VoteIDRequest{VoteID: voteID})
	})
	return err
}

func (s *GRPCClient) CastBallot(ctx context.Context, voteID, option string) (*api.Ballot, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.BallotResponse, error) {
		return s.client.CastBallot(ctx, &api.CastBallotRequest{VoteID: voteID, Option: option})
	})
	if err != nil {
		return nil, err
	}
	return resp.Ballot, nil
}

func (s *GRPCClient) Tally(ctx context.Context, voteID string) (*api.Tally, error) {
	return call(ctx, s, func(ctx context.Context) (*api.Tally, error) {
		return s.client.GetTally(ctx, &api.VoteIDRequest{VoteID: voteID})
	})
}

func (s *GRPCClient) SubmitRequest(ctx context.Context, title, description, requestType string) (*api.ServiceRequest, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.ServiceRequestResponse, error) {
		return s.client.SubmitRequest(ctx, &api.SubmitRequestRequest{Title: title, Description: description, RequestType: requestType})
	})
	if err != nil {
		return nil, err
	}
	return resp.Request, nil
}

func (s *GRPCClient) ListRequests(ctx context.Context) ([]*api.ServiceRequest, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.ListRequestsResponse, error) {
		return s.client.ListRequests(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

func (s *GRPCClient) ApproveRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error) {
	return call(ctx, s, func(ctx context.Context) (*api.DecideResponse, error) {
		return s.client.ApproveRequest(ctx, &api.DecideRequest{RequestID: requestID, Notes: notes})
	})
}

func (s *GRPCClient) RejectRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error) {
	return call(ctx, s, func(ctx context.Context) (*api.DecideResponse, error) {
		return s.client.RejectRequest(ctx, &api.DecideRequest{RequestID: requestID, Notes: notes})
	})
}

func (s *GRPCClient) ListFlights(ctx context.Context) ([]*api.Flight, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.ListFlightsResponse, error) {
		return s.client.ListFlights(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.Flights, nil
}

func (s *GRPCClient) CreateFlight(ctx context.Context, f *api.Flight) (*api.Flight, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.FlightResponse, error) {
		return s.client.CreateFlight(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return resp.Flight, nil
}

func (s *GRPCClient) SetFlightStatus(ctx context.Context, flightID, flightStatus string) error {
	_, err := call(ctx, s, func(ctx context.Context) (*api.Empty, error) {
		return s.client.SetFlightStatus(ctx, &api.SetFlightStatusRequest{FlightID: flightID, Status: flightStatus})
	})
	return err
}

func (s *GRPCClient) PurchaseFlight(ctx context.Context, flightID string) (*api.Transaction, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.TransactionResponse, error) {
		return s.client.PurchaseFlight(ctx, &api.PurchaseFlightRequest{FlightID: flightID})
	})
	if err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (s *GRPCClient) RequestDocumentUpload(ctx context.Context, name, documentType, notes string) (*api.RequestDocumentUploadResponse, error) {
	return call(ctx, s, func(ctx context.Context) (*api.RequestDocumentUploadResponse, error) {
		return s.client.RequestDocumentUpload(ctx, &api.RequestDocumentUploadRequest{Name: name, DocumentType: documentType, Notes: notes})
	})
}

func (s *GRPCClient) ListDocuments(ctx context.Context) ([]*api.Document, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.ListDocumentsResponse, error) {
		return s.client.ListDocuments(ctx, &api.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

func (s *GRPCClient) DocumentURL(ctx context.Context, documentID string) (string, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.DocumentURLResponse, error) {
		return s.client.GetDocumentURL(ctx, &api.DocumentURLRequest{DocumentID: documentID})
	})
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// LogPageView reports a visited path and returns the page it resolved to,
// "" when the server ignored it.
func (s *GRPCClient) LogPageView(ctx context.Context, path string) (string, error) {
	resp, err := call(ctx, s, func(ctx context.Context) (*api.LogPageViewResponse, error) {
		return s.client.LogPageView(ctx, &api.LogPageViewRequest{Path: path})
	})
	if err != nil {
		return "", err
	}
	return resp.PageName, nil
}
