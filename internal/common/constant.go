// Package common contains constants and helpers shared by client packages.
package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a request with client-side log lines.
	RequestIDHeaderName = "X-Request-ID"

	// DefaultKeyPrefix namespaces the persisted session entries.
	DefaultKeyPrefix = "@GoBarber"
)
