// Package common defines shared constants and sentinel errors used across
// the notekeeper server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (missing or malformed client input).
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenRevoked = errors.New("token revoked")
)

// ErrorKind classifies an error by the sentinel it wraps.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindInvalidToken
	KindRevoked
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindRevoked:
		return "revoked"
	default:
		return "internal"
	}
}

// Kind reports the kind of err. Anything that does not wrap one of the
// package sentinels is treated as internal.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrTokenRevoked):
		return KindRevoked
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	default:
		return KindInternal
	}
}
