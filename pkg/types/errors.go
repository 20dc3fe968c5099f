package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures at the API boundary.
// AuthError covers credential problems (not retryable without operator
// intervention), NotFoundError an unresolvable realm (retryable by
// widening the sweep or fixing the static table), FetchError a
// transient upstream failure, and ConfigError missing environment
// secrets (fatal until fixed externally).
var (
	ErrAuth     = errors.New("auth error")
	ErrNotFound = errors.New("not found")
	ErrFetch    = errors.New("fetch error")
	ErrConfig   = errors.New("config error")
)

// AuthError describes a failed token exchange or a rejected credential.
type AuthError struct {
	Status int    // HTTP status, 0 for transport failures
	Body   string // response body, truncated
	Err    error  // transport error, if any
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error: %v", e.Err)
	}
	return fmt.Sprintf("auth error: status %d: %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrAuth
}

// Is lets errors.Is(err, ErrAuth) match regardless of construction.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// NotFoundError reports a realm key that could not be resolved to a
// connected realm ID by either the static mapping or the sweep.
type NotFoundError struct {
	RealmKey string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("realm %q not found", e.RealmKey)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FetchError reports a failed upstream data fetch.
type FetchError struct {
	Operation string // "realm-index", "realm-detail", "auctions"
	Status    int    // HTTP status, 0 for transport failures
	Err       error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s fetch failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s fetch failed: status %d", e.Operation, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// ConfigError reports a missing or malformed configuration value,
// distinct from an auth failure so operators can tell "secret not set"
// apart from "secret rejected".
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s is not set", e.Field)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
