// Package validate holds the structural rules a request payload must satisfy
// before it is sent to the Rask API.
package validate

import (
	"errors"
	"fmt"
)

// Error reports a payload that violates a validation rule.
//
// Field names the payload field the rule was applied to and may be empty for
// rules spanning several fields.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an *Error for rules composed outside this package.
func Errorf(field, format string, args ...any) error {
	return newError(field, format, args...)
}

// AsError extracts *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
