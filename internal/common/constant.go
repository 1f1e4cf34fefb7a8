// Package common contains shared constants and sentinel errors used across
// the citizen portal server and CLI.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// CurrencyCode is the portal currency shown next to balances and amounts.
const CurrencyCode = "VHS"

// Roles assigned to portal users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
