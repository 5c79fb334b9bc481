package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthenticationFailedDetail is the detail of every failed token exchange.
const AuthenticationFailedDetail = "Authentication error occurred."

var (
	// ErrTokenMissing means no token was obtained yet.
	ErrTokenMissing = errors.New("auth: token missing")

	// ErrTokenExpired means the token expired or the server rejected it.
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenError is a token signal carrying the failure that revealed it, such as
// the API error of a 401 response.
type TokenError struct {
	Err   error
	Cause error
}

// ExpiredBy wraps cause into a token-expired signal.
func ExpiredBy(cause error) error {
	return &TokenError{Err: ErrTokenExpired, Cause: cause}
}

func (e *TokenError) Error() string {
	if e.Cause == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %v", e.Err, e.Cause)
}

func (e *TokenError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// IsTokenError reports whether err signals a missing or expired token.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMissing) || errors.Is(err, ErrTokenExpired)
}

// Error reports a failed token exchange with the identity provider.
type Error struct {
	StatusCode int
	Detail     string
	Cause      error
}

func newError(cause error) *Error {
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Detail:     AuthenticationFailedDetail,
		Cause:      cause,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError extracts *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
