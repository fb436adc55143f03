package econ

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/econ-client/internal/constants"
)

// Common error codes returned in the error envelope.
const (
	ErrorCodeUnknown        = constants.ErrorCodeUnknown
	ErrorCodeRateLimited    = constants.ErrorCodeRateLimited
	ErrorCodeNotFound       = constants.ErrorCodeNotFound
	ErrorCodeShopNotFound   = constants.ErrorCodeShopNotFound
	ErrorCodePlayerNotFound = constants.ErrorCodePlayerNotFound
	ErrorCodeItemNotFound   = constants.ErrorCodeItemNotFound
	ErrorCodeUnauthorized   = constants.ErrorCodeUnauthorized
	ErrorCodeForbidden      = constants.ErrorCodeForbidden
	ErrorCodeValidation     = constants.ErrorCodeValidation
	ErrorCodeInternal       = constants.ErrorCodeInternal
)

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("invalid or missing API key")
	ErrForbidden       = errors.New("access forbidden")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrInvalidEnvelope = errors.New("response body is not a valid envelope")
)

// Error is returned for every non-2xx API response.
type Error struct {
	Message    string
	Code       string
	StatusCode int
	RequestID  string
	Details    map[string]any
	// Envelope is the parsed error envelope; nil when the body could not be
	// parsed.
	Envelope *Envelope[json.RawMessage]
}

// Error implements the error interface.
func (e *Error) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Code)
	builder.WriteString(": ")
	builder.WriteString(e.Message)
	_, _ = fmt.Fprintf(&builder, " (status: %d", e.StatusCode)

	if e.RequestID != "" {
		builder.WriteString(", request_id: ")
		builder.WriteString(e.RequestID)
	}

	builder.WriteByte(')')

	return builder.String()
}

// IsClientError reports a 4xx status.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= constants.HTTPStatusBadRequest && e.StatusCode < constants.HTTPStatusInternalServerError
}

// IsServerError reports a 5xx (or higher) status.
func (e *Error) IsServerError() bool {
	return e.StatusCode >= constants.HTTPStatusInternalServerError
}

// IsRateLimitError reports a 429 status or the rate-limit error code.
func (e *Error) IsRateLimitError() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == ErrorCodeRateLimited
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || strings.HasSuffix(e.Code, constants.ErrorCodeNotFoundSuffix)
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.Code == ErrorCodeUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden || e.Code == ErrorCodeForbidden
	case ErrRateLimited:
		return e.IsRateLimitError()
	}

	return false
}

// ParseErrorEnvelope decodes an error envelope. It fails with
// ErrInvalidEnvelope when body is not JSON or carries no error code.
func ParseErrorEnvelope(body []byte) (*Envelope[json.RawMessage], error) {
	var envelope Envelope[json.RawMessage]

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	if envelope.Error == nil || envelope.Error.Code == "" {
		return nil, fmt.Errorf("%w: missing error code", ErrInvalidEnvelope)
	}

	return &envelope, nil
}

// ParseErrorResponse builds an Error from a non-2xx response body. A body
// that is not an error envelope yields an UNKNOWN_ERROR carrying the HTTP
// status and status text.
func ParseErrorResponse(statusCode int, body []byte) *Error {
	envelope, err := ParseErrorEnvelope(body)
	if err != nil {
		return &Error{
			Message:    fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)),
			Code:       ErrorCodeUnknown,
			StatusCode: statusCode,
		}
	}

	return &Error{
		Message:    envelope.Error.Message,
		Code:       envelope.Error.Code,
		StatusCode: statusCode,
		RequestID:  envelope.Meta.RequestID,
		Details:    envelope.Error.Details,
		Envelope:   envelope,
	}
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if the error is a rate-limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// TransportError is returned when a request never produced an HTTP response:
// timeouts, refused or reset connections, DNS failures, cancellation.
type TransportError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed after %d attempt(s): %v", e.Method, e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline being exceeded.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
