// Package apierr defines the closed set of errors the gateway surfaces to
// clients. Each variant carries the HTTP status it maps to; translation to a
// response body happens only in the HTTP layer.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags an Error with its variant.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindTimeout
	KindProvider
	KindRateLimit
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindTimeout:
		return "timeout_error"
	case KindProvider:
		return "provider_error"
	case KindRateLimit:
		return "rate_limit_error"
	case KindUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}

// Error is a classified gateway error.
type Error struct {
	Kind Kind
	// Msg is safe to return to clients.
	Msg string
	// Provider names the upstream for KindProvider and KindTimeout errors.
	Provider string
	// Status is the upstream HTTP status for KindProvider errors.
	Status int
	// Body is the upstream response body. It is kept for logs only.
	Body string
	// Err is an optional underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is the client-facing message.
func (e *Error) Detail() string {
	if e.Provider != "" {
		return e.Provider + ": " + e.Msg
	}
	return e.Msg
}

// Code is the machine-readable error code.
func (e *Error) Code() string { return e.Kind.String() }

// StatusCode maps the variant to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindProvider:
		// Upstream statuses outside the error range cannot be relayed as-is.
		if e.Status < 400 || e.Status > 599 {
			return http.StatusBadGateway
		}
		return e.Status
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Timeout reports that an upstream call exceeded its deadline.
func Timeout(provider string, cause error) error {
	return &Error{Kind: KindTimeout, Provider: provider, Msg: "request timed out", Err: cause}
}

// Provider reports a non-success upstream response.
func Provider(provider string, status int, body string) error {
	return &Error{
		Kind:     KindProvider,
		Provider: provider,
		Status:   status,
		Body:     body,
		Msg:      fmt.Sprintf("API returned status %d", status),
	}
}

// ProviderFailure reports an upstream failure that has no HTTP status of its own.
func ProviderFailure(provider, msg string, cause error) error {
	return &Error{Kind: KindProvider, Provider: provider, Status: http.StatusInternalServerError, Msg: msg, Err: cause}
}

// RateLimited reports that the gateway refused work because it is saturated.
func RateLimited(msg string) error {
	return &Error{Kind: KindRateLimit, Msg: msg}
}

// Unavailable reports a dependency that is not usable right now.
func Unavailable(msg string) error {
	return &Error{Kind: KindUnavailable, Msg: msg}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func isKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsTimeout reports whether err is an upstream timeout.
func IsTimeout(err error) bool { return isKind(err, KindTimeout) }

// IsProvider reports whether err is an upstream non-success response.
func IsProvider(err error) bool { return isKind(err, KindProvider) }

// IsRateLimited reports whether err is a backpressure rejection.
func IsRateLimited(err error) bool { return isKind(err, KindRateLimit) }
