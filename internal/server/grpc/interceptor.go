package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/auth"
	"github.com/dmitrijs2005/citizenportal/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// ReasonAuthRequired is sent as "reason=auth_required" when a private
// portal is asked for its settings without a valid session.
const ReasonAuthRequired = "auth_required"

// methods callable without an access token
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):              true,
	api.FullMethod(api.MethodGetPublicSettings): true,
	api.FullMethod(api.MethodRegister):          true,
	api.FullMethod(api.MethodLogin):             true,
	api.FullMethod(api.MethodRefreshToken):      true,
	api.FullMethod(api.MethodLogout):            true,
}

var adminMethods = map[string]bool{
	api.FullMethod(api.MethodAdminAdjust):     true,
	api.FullMethod(api.MethodCreateVote):      true,
	api.FullMethod(api.MethodActivateVote):    true,
	api.FullMethod(api.MethodCloseVote):       true,
	api.FullMethod(api.MethodDeleteVote):      true,
	api.FullMethod(api.MethodApproveRequest):  true,
	api.FullMethod(api.MethodRejectRequest):   true,
	api.FullMethod(api.MethodCreateFlight):    true,
	api.FullMethod(api.MethodSetFlightStatus): true,
}

var rateLimitedMethods = map[string]bool{
	api.FullMethod(api.MethodLogin):    true,
	api.FullMethod(api.MethodRegister): true,
}

// IdentityFromContext returns the caller authenticated by the interceptor.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func shortMethod(fullMethod string) string {
	if i := strings.LastIndexByte(fullMethod, '/'); i >= 0 {
		return fullMethod[i+1:]
	}
	return fullMethod
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.ContextWith(ctx, "rpc", shortMethod(info.FullMethod))
	resp, err := handler(ctx, req)
	metrics.RecordRPC(shortMethod(info.FullMethod), status.Code(err).String(), time.Since(start))
	return resp, err
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if rateLimitedMethods[info.FullMethod] {
		key := "unknown"
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			key = p.Addr.String()
			// one bucket per host, not per ephemeral port
			if i := strings.LastIndexByte(key, ':'); i > 0 {
				key = key[:i]
			}
		}
		if !s.limiter.allow(key) {
			metrics.RecordRateLimited(shortMethod(info.FullMethod))
			s.logger.Warn(ctx, "rate limit exceeded", "method", info.FullMethod, "peer", key)
			return nil, status.Error(codes.ResourceExhausted, "too many attempts, try again later")
		}
	}
	return handler(ctx, req)
}

// accessTokenInterceptor authenticates the caller from the access_token
// metadata and enforces the public, admin and private-portal rules.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	public := publicMethods[info.FullMethod]

	var (
		id       auth.Identity
		authErr  error
		hasToken bool
	)
	if token := accessTokenFromContext(ctx); token != "" {
		hasToken = true
		id, authErr = auth.ParseToken(token, s.jwtSecret)
	}
	authenticated := hasToken && authErr == nil
	if authenticated {
		ctx = logging.ContextWith(withIdentity(ctx, id), "user", id.Email)
	}

	if info.FullMethod == api.FullMethod(api.MethodGetPublicSettings) && s.settings != nil && s.settings.Private() && !authenticated {
		return nil, status.Error(codes.PermissionDenied, "reason="+ReasonAuthRequired)
	}

	if public {
		return handler(ctx, req)
	}

	if !hasToken {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if authErr != nil {
		if errors.Is(authErr, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	if adminMethods[info.FullMethod] && !id.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}

	return handler(ctx, req)
}
