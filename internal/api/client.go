package api

import (
	"context"

	"google.golang.org/grpc"
)

// PortalClient is the client side of the portal service. Every call uses
// the JSON codec.
type PortalClient struct {
	cc grpc.ClientConnInterface
}

func NewPortalClient(cc grpc.ClientConnInterface) *PortalClient {
	return &PortalClient{cc: cc}
}

func invoke[Req any, Resp any](ctx context.Context, c *PortalClient, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PortalClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[Empty, PingResponse](ctx, c, MethodPing, in, opts)
}

func (c *PortalClient) GetPublicSettings(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PublicSettings, error) {
	return invoke[Empty, PublicSettings](ctx, c, MethodGetPublicSettings, in, opts)
}

func (c *PortalClient) Register(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[Credentials, UserResponse](ctx, c, MethodRegister, in, opts)
}

func (c *PortalClient) Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[Credentials, TokenPair](ctx, c, MethodLogin, in, opts)
}

func (c *PortalClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[RefreshTokenRequest, TokenPair](ctx, c, MethodRefreshToken, in, opts)
}

func (c *PortalClient) Logout(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[RefreshTokenRequest, Empty](ctx, c, MethodLogout, in, opts)
}

func (c *PortalClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[Empty, UserResponse](ctx, c, MethodMe, in, opts)
}

func (c *PortalClient) GetAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[Empty, AccountResponse](ctx, c, MethodGetAccount, in, opts)
}

func (c *PortalClient) GetHistory(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[Empty, HistoryResponse](ctx, c, MethodGetHistory, in, opts)
}

func (c *PortalClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransferRequest, TransactionResponse](ctx, c, MethodTransfer, in, opts)
}

func (c *PortalClient) AdminAdjust(ctx context.Context, in *AdminAdjustRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[AdminAdjustRequest, TransactionResponse](ctx, c, MethodAdminAdjust, in, opts)
}

func (c *PortalClient) ListVotes(ctx context.Context, in *ListVotesRequest, opts ...grpc.CallOption) (*ListVotesResponse, error) {
	return invoke[ListVotesRequest, ListVotesResponse](ctx, c, MethodListVotes, in, opts)
}

func (c *PortalClient) CreateVote(ctx context.Context, in *CreateVoteRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[CreateVoteRequest, VoteResponse](ctx, c, MethodCreateVote, in, opts)
}

func (c *PortalClient) ActivateVote(ctx context.Context, in *VoteIDRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteIDRequest, VoteResponse](ctx, c, MethodActivateVote, in, opts)
}

func (c *PortalClient) CloseVote(ctx context.Context, in *VoteIDRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return invoke[VoteIDRequest, VoteResponse](ctx, c, MethodCloseVote, in, opts)
}

func (c *PortalClient) DeleteVote(ctx context.Context, in *VoteIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[VoteIDRequest, Empty](ctx, c, MethodDeleteVote, in, opts)
}

func (c *PortalClient) CastBallot(ctx context.Context, in *CastBallotRequest, opts ...grpc.CallOption) (*BallotResponse, error) {
	return invoke[CastBallotRequest, BallotResponse](ctx, c, MethodCastBallot, in, opts)
}

func (c *PortalClient) GetTally(ctx context.Context, in *VoteIDRequest, opts ...grpc.CallOption) (*Tally, error) {
	return invoke[VoteIDRequest, Tally](ctx, c, MethodGetTally, in, opts)
}

func (c *PortalClient) SubmitRequest(ctx context.Context, in *SubmitRequestRequest, opts ...grpc.CallOption) (*ServiceRequestResponse, error) {
	return invoke[SubmitRequestRequest, ServiceRequestResponse](ctx, c, MethodSubmitRequest, in, opts)
}

func (c *PortalClient) ListRequests(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListRequestsResponse, error) {
	return invoke[Empty, ListRequestsResponse](ctx, c, MethodListRequests, in, opts)
}

func (c *PortalClient) ApproveRequest(ctx context.Context, in *DecideRequest, opts ...grpc.CallOption) (*DecideResponse, error) {
	return invoke[DecideRequest, DecideResponse](ctx, c, MethodApproveRequest, in, opts)
}

func (c *PortalClient) RejectRequest(ctx context.Context, in *DecideRequest, opts ...grpc.CallOption) (*DecideResponse, error) {
	return invoke[DecideRequest, DecideResponse](ctx, c, MethodRejectRequest, in, opts)
}

func (c *PortalClient) ListFlights(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListFlightsResponse, error) {
	return invoke[Empty, ListFlightsResponse](ctx, c, MethodListFlights, in, opts)
}

func (c *PortalClient) CreateFlight(ctx context.Context, in *Flight, opts ...grpc.CallOption) (*FlightResponse, error) {
	return invoke[Flight, FlightResponse](ctx, c, MethodCreateFlight, in, opts)
}

func (c *PortalClient) SetFlightStatus(ctx context.Context, in *SetFlightStatusRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[SetFlightStatusRequest, Empty](ctx, c, MethodSetFlightStatus, in, opts)
}

func (c *PortalClient) PurchaseFlight(ctx context.Context, in *PurchaseFlightRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[PurchaseFlightRequest, TransactionResponse](ctx, c, MethodPurchaseFlight, in, opts)
}

func (c *PortalClient) RequestDocumentUpload(ctx context.Context, in *RequestDocumentUploadRequest, opts ...grpc.CallOption) (*RequestDocumentUploadResponse, error) {
	return invoke[RequestDocumentUploadRequest, RequestDocumentUploadResponse](ctx, c, MethodRequestDocumentUpload, in, opts)
}

func (c *PortalClient) ListDocuments(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	return invoke[Empty, ListDocumentsResponse](ctx, c, MethodListDocuments, in, opts)
}

func (c *PortalClient) GetDocumentURL(ctx context.Context, in *DocumentURLRequest, opts ...grpc.CallOption) (*DocumentURLResponse, error) {
	return invoke[DocumentURLRequest, DocumentURLResponse](ctx, c, MethodGetDocumentURL, in, opts)
}

func (c *PortalClient) LogPageView(ctx context.Context, in *LogPageViewRequest, opts ...grpc.CallOption) (*LogPageViewResponse, error) {
	return invoke[LogPageViewRequest, LogPageViewResponse](ctx, c, MethodLogPageView, in, opts)
}
