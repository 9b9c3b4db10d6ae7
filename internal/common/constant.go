// Package common contains shared constants and sentinel errors used across
// GophTasks components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Well-known keys of the persisted client session.
const (
	SessionTokenKey = "authToken"
	SessionUserKey  = "user"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
