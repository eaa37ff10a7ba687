package domain

import "errors"

// Sentinel errors for provider error classification. The provider client
// wraps these so callers can branch on error categories with errors.Is
// without ever inspecting transport status codes.
//
//	return fmt.Errorf("zone %q: %w", name, domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested zone or record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to an
	// invalid, expired, or under-scoped credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates the provider (or local pre-validation)
	// rejected record content as malformed.
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a network failure or provider 5xx. Safe to
	// retry; the executor surfaces it immediately and leaves retrying to
	// an optional client-side policy.
	ErrTransient = errors.New("transient provider error")

	// ErrConflict indicates mutually-exclusive state, such as an apex
	// CNAME coexisting with apex address records.
	ErrConflict = errors.New("conflict")
)

// IsTransient reports whether err is worth retrying: a network/5xx
// failure or provider throttling.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrRateLimited)
}
