package auth

import (
	"context"
	"errors"
)

// Do runs op and, if it fails with a token signal, authenticates once and
// runs op once more. A token signal from the replay is not returned as is:
// the failure it carries is, or an *Error when it carries none. Any other
// failure is returned without authenticating.
func Do[T any](ctx context.Context, a Authenticator, op func(context.Context) (T, error)) (T, error) {
	v, err := op(ctx)
	if err == nil || !IsTokenError(err) {
		return v, err
	}

	if err := a.Authenticate(ctx); err != nil {
		var zero T
		return zero, err
	}

	v, err = op(ctx)
	return v, settle(err)
}

// settle unwraps a token signal left after the single retry.
func settle(err error) error {
	if err == nil || !IsTokenError(err) {
		return err
	}
	var te *TokenError
	if errors.As(err, &te) && te.Cause != nil {
		return te.Cause
	}
	return newError(err)
}
