package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "citizenportal.PortalService"

// Method names of the portal service.
const (
	MethodPing                  = "Ping"
	MethodGetPublicSettings     = "GetPublicSettings"
	MethodRegister              = "Register"
	MethodLogin                 = "Login"
	MethodRefreshToken          = "RefreshToken"
	MethodLogout                = "Logout"
	MethodMe                    = "Me"
	MethodGetAccount            = "GetAccount"
	MethodGetHistory            = "GetHistory"
	MethodTransfer              = "Transfer"
	MethodAdminAdjust           = "AdminAdjust"
	MethodListVotes             = "ListVotes"
	MethodCreateVote            = "CreateVote"
	MethodActivateVote          = "ActivateVote"
	MethodCloseVote             = "CloseVote"
	MethodDeleteVote            = "DeleteVote"
	MethodCastBallot            = "CastBallot"
	MethodGetTally              = "GetTally"
	MethodSubmitRequest         = "SubmitRequest"
	MethodListRequests          = "ListRequests"
	MethodApproveRequest        = "ApproveRequest"
	MethodRejectRequest         = "RejectRequest"
	MethodListFlights           = "ListFlights"
	MethodCreateFlight          = "CreateFlight"
	MethodSetFlightStatus       = "SetFlightStatus"
	MethodPurchaseFlight        = "PurchaseFlight"
	MethodRequestDocumentUpload = "RequestDocumentUpload"
	MethodListDocuments         = "ListDocuments"
	MethodGetDocumentURL        = "GetDocumentURL"
	MethodLogPageView           = "LogPageView"
)

// FullMethod returns "/citizenportal.PortalService/<method>", the form seen
// by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PortalServer is implemented by the gRPC server.
type PortalServer interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	GetPublicSettings(context.Context, *Empty) (*PublicSettings, error)

	Register(context.Context, *Credentials) (*UserResponse, error)
	Login(context.Context, *Credentials) (*TokenPair, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenPair, error)
	Logout(context.Context, *RefreshTokenRequest) (*Empty, error)
	Me(context.Context, *Empty) (*UserResponse, error)

	GetAccount(context.Context, *Empty) (*AccountResponse, error)
	GetHistory(context.Context, *Empty) (*HistoryResponse, error)
	Transfer(context.Context, *TransferRequest) (*TransactionResponse, error)
	AdminAdjust(context.Context, *AdminAdjustRequest) (*TransactionResponse, error)

	ListVotes(context.Context, *ListVotesRequest) (*ListVotesResponse, error)
	CreateVote(context.Context, *CreateVoteRequest) (*VoteResponse, error)
	ActivateVote(context.Context, *VoteIDRequest) (*VoteResponse, error)
	CloseVote(context.Context, *VoteIDRequest) (*VoteResponse, error)
	DeleteVote(context.Context, *VoteIDRequest) (*Empty, error)
	CastBallot(context.Context, *CastBallotRequest) (*BallotResponse, error)
	GetTally(context.Context, *VoteIDRequest) (*Tally, error)

	SubmitRequest(context.Context, *SubmitRequestRequest) (*ServiceRequestResponse, error)
	ListRequests(context.Context, *Empty) (*ListRequestsResponse, error)
	ApproveRequest(context.Context, *DecideRequest) (*DecideResponse, error)
	RejectRequest(context.Context, *DecideRequest) (*DecideResponse, error)

	ListFlights(context.Context, *Empty) (*ListFlightsResponse, error)
	CreateFlight(context.Context, *Flight) (*FlightResponse, error)
	SetFlightStatus(context.Context, *SetFlightStatusRequest) (*Empty, error)
	PurchaseFlight(context.Context, *PurchaseFlightRequest) (*TransactionResponse, error)

	RequestDocumentUpload(context.Context, *RequestDocumentUploadRequest) (*RequestDocumentUploadResponse, error)
	ListDocuments(context.Context, *Empty) (*ListDocumentsResponse, error)
	GetDocumentURL(context.Context, *DocumentURLRequest) (*DocumentURLResponse, error)

	LogPageView(context.Context, *LogPageViewRequest) (*LogPageViewResponse, error)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req any, Resp any](name string, call func(PortalServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PortalServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PortalServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the portal service to grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PortalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, PortalServer.Ping),
		unary(MethodGetPublicSettings, PortalServer.GetPublicSettings),
		unary(MethodRegister, PortalServer.Register),
		unary(MethodLogin, PortalServer.Login),
		unary(MethodRefreshToken, PortalServer.RefreshToken),
		unary(MethodLogout, PortalServer.Logout),
		unary(MethodMe, PortalServer.Me),
		unary(MethodGetAccount, PortalServer.GetAccount),
		unary(MethodGetHistory, PortalServer.GetHistory),
		unary(MethodTransfer, PortalServer.Transfer),
		unary(MethodAdminAdjust, PortalServer.AdminAdjust),
		unary(MethodListVotes, PortalServer.ListVotes),
		unary(MethodCreateVote, PortalServer.CreateVote),
		unary(MethodActivateVote, PortalServer.ActivateVote),
		unary(MethodCloseVote, PortalServer.CloseVote),
		unary(MethodDeleteVote, PortalServer.DeleteVote),
		unary(MethodCastBallot, PortalServer.CastBallot),
		unary(MethodGetTally, PortalServer.GetTally),
		unary(MethodSubmitRequest, PortalServer.SubmitRequest),
		unary(MethodListRequests, PortalServer.ListRequests),
		unary(MethodApproveRequest, PortalServer.ApproveRequest),
		unary(MethodRejectRequest, PortalServer.RejectRequest),
		unary(MethodListFlights, PortalServer.ListFlights),
		unary(MethodCreateFlight, PortalServer.CreateFlight),
		unary(MethodSetFlightStatus, PortalServer.SetFlightStatus),
		unary(MethodPurchaseFlight, PortalServer.PurchaseFlight),
		unary(MethodRequestDocumentUpload, PortalServer.RequestDocumentUpload),
		unary(MethodListDocuments, PortalServer.ListDocuments),
		unary(MethodGetDocumentURL, PortalServer.GetDocumentURL),
		unary(MethodLogPageView, PortalServer.LogPageView),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "citizenportal/portal.proto",
}

// RegisterPortalServer registers srv on s.
func RegisterPortalServer(s grpc.ServiceRegistrar, srv PortalServer) {
	s.RegisterService(&ServiceDesc, srv)
}
