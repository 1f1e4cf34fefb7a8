package client

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AccessUnknown is the type of every access error without a reason code.
const AccessUnknown = "unknown"

// AccessError describes why the portal refused to show itself.
type AccessError struct {
	Type    string
	Message string
}

// ClassifyAccessError turns a failed GetPublicSettings call into an
// AccessError. PermissionDenied carrying "reason=<code>" yields that code;
// anything else is unknown.
func ClassifyAccessError(err error) AccessError {
	if err == nil {
		return AccessError{}
	}
	st, ok := status.FromError(err)
	if !ok {
		return AccessError{Type: AccessUnknown, Message: err.Error()}
	}
	if st.Code() == codes.PermissionDenied {
		if reason, found := strings.CutPrefix(st.Message(), "reason="); found && reason != "" {
			return AccessError{Type: reason, Message: st.Message()}
		}
	}
	return AccessError{Type: AccessUnknown, Message: st.Message()}
}
