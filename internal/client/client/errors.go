package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrRejected     = errors.New("request rejected")
	ErrRateLimited  = errors.New("too many attempts")
)

// RPCError pairs a sentinel with the status the server sent.
type RPCError struct {
	Kind   error
	Status *status.Status
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Status.Message())
}

func (e *RPCError) Unwrap() error { return e.Kind }

func (e *RPCError) GRPCStatus() *status.Status { return e.Status }
