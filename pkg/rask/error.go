package rask

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MimeLyc/rask-sdk-go/internal/auth"
	"github.com/MimeLyc/rask-sdk-go/internal/validate"
)

// UnknownErrorDetail replaces the detail of a failure response that carries
// none.
const UnknownErrorDetail = "Unknown error occurred."

// APIError is a non-2xx response of the Rask API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"-"`

	// Detail is the server's explanation, or UnknownErrorDetail.
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
}

// ValidationError is a payload rejected before it was sent.
type ValidationError = validate.Error

// AuthenticationError is a failed client-credentials exchange. Its status is
// always 401.
type AuthenticationError = auth.Error

// translateError builds the APIError for a failure response. A body that is
// not a JSON object with a detail field yields UnknownErrorDetail.
func translateError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Detail: UnknownErrorDetail}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	raw, ok := payload["detail"]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(raw, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	// FastAPI reports request validation failures as a list of objects.
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		apiErr.Detail = compact.String()
	}
	return apiErr
}

// AsAPIError extracts *APIError from an error chain.
//
// Example:
//
//	if apiErr, ok := rask.AsAPIError(err); ok && apiErr.StatusCode == 404 {
//	    // not found
//	}
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsValidationError extracts *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	return validate.AsError(err)
}

// AsAuthenticationError extracts *AuthenticationError from an error chain.
func AsAuthenticationError(err error) (*AuthenticationError, bool) {
	return auth.AsError(err)
}
