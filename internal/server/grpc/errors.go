package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// codeFor maps sentinel errors to status codes. Unknown errors are Internal.
func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrAlreadyExists):
		return codes.AlreadyExists
	case errors.Is(err, common.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrInsufficientBalance),
		errors.Is(err, common.ErrNotOpen):
		return codes.FailedPrecondition
	case errors.Is(err, common.ErrForbidden):
		return codes.PermissionDenied
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return codes.Unauthenticated
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// toStatus converts a service error into a gRPC status error. Internal
// errors are logged and replaced by a generic message.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	code := codeFor(err)
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
