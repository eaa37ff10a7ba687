// Package auth stores and resolves provider API credentials.
//
// Long-lived tokens live in the OS keychain under the zonectl service
// name. Resolution walks a fixed precedence chain (flag, environment,
// keyring, interactive prompt) so automation can inject scoped tokens
// while interactive use stays convenient.
package auth

import (
	"errors"

	"ffc/zonectl/internal/util"
)

const ServiceName = "zonectl"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider normalizes a provider name for consistent key lookup.
func NormalizeProvider(provider string) string {
	return util.NormalizeKey(provider)
}
