package models

import (
	"errors"
	"fmt"
)

// Validation failure reasons.
const (
	ReasonTooLarge        = "too_large"
	ReasonUnsupportedType = "unsupported_type"
)

// ValidationError means the uploaded content itself is unacceptable.
type ValidationError struct {
	Reason string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid upload (%s): %s", e.Reason, e.Detail)
}

// ErrUnknownProvider is returned when a request names a provider id that
// does not exist. ErrNoProvider is returned when no configured provider
// has credentials and the request did not name one.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrNoProvider      = errors.New("no provider configured")
)

// ProviderError kinds.
const (
	KindAuthFailed          = "auth_failed"
	KindRateLimited         = "rate_limited"
	KindUpstreamUnavailable = "upstream_unavailable"
	KindMalformedResponse   = "malformed_response"
)

// ProviderError wraps any failure from an outbound provider call.
type ProviderError struct {
	Provider string
	Kind     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error { return e.Err }
