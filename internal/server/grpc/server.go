// Package grpc serves the portal API over gRPC with the JSON codec.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte
	limiter   *loginLimiter

	users       userSvc
	ledger      ledgerSvc
	votes       voteSvc
	requests    requestSvc
	marketplace marketplaceSvc
	documents   documentSvc
	navigation  navigationSvc
	settings    settingsSvc
}

var _ api.PortalServer = (*GRPCServer)(nil)

func NewGRPCServer(cfg *config.Config, l logging.Logger, svc Services) (*GRPCServer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	return &GRPCServer{
		address:     cfg.EndpointAddrGRPC,
		logger:      l.With("module", "grpc_server"),
		jwtSecret:   []byte(cfg.SecretKey),
		limiter:     newLoginLimiter(cfg.LoginRatePerSecond, cfg.LoginBurst),
		users:       svc.Users,
		ledger:      svc.Ledger,
		votes:       svc.Votes,
		requests:    svc.Requests,
		marketplace: svc.Marketplace,
		documents:   svc.Documents,
		navigation:  svc.Navigation,
		settings:    svc.Settings,
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.rateLimitInterceptor,
		s.accessTokenInterceptor,
	))
	api.RegisterPortalServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
