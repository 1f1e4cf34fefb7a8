// Package client is the CLI's connection to the portal backend.
//
// GRPCClient manages one connection, injects the access token through a
// unary interceptor, refreshes an expired token once per call, applies a
// per-call timeout and maps gRPC status codes onto the sentinel errors in
// errors.go. Callers match them with errors.Is; the original status stays
// reachable through status.FromError, which is what ClassifyAccessError
// uses.
//
// GRPCClient is safe for concurrent use: the session publisher polls Me
// while the REPL issues commands.
package client
