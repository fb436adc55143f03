package econ_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := &econ.Error{Code: "SHOP_NOT_FOUND", Message: "Shop not found", StatusCode: 404, RequestID: "req-1"}
	assert.Equal(t, "SHOP_NOT_FOUND: Shop not found (status: 404, request_id: req-1)", err.Error())

	err.RequestID = ""
	assert.Equal(t, "SHOP_NOT_FOUND: Shop not found (status: 404)", err.Error())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestError_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         *econ.Error
		clientError bool
		serverError bool
		rateLimit   bool
	}{
		{
			name:        "not found",
			err:         &econ.Error{Code: econ.ErrorCodeShopNotFound, StatusCode: 404},
			clientError: true,
		},
		{
			name:        "too many requests",
			err:         &econ.Error{Code: econ.ErrorCodeUnknown, StatusCode: 429},
			clientError: true,
			rateLimit:   true,
		},
		{
			name:        "rate limit code on 400",
			err:         &econ.Error{Code: econ.ErrorCodeRateLimited, StatusCode: 400},
			clientError: true,
			rateLimit:   true,
		},
		{
			name:        "internal",
			err:         &econ.Error{Code: econ.ErrorCodeInternal, StatusCode: 500},
			serverError: true,
		},
		{
			name:        "gateway timeout",
			err:         &econ.Error{Code: econ.ErrorCodeUnknown, StatusCode: 504},
			serverError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.clientError, tt.err.IsClientError())
			assert.Equal(t, tt.serverError, tt.err.IsServerError())
			assert.Equal(t, tt.rateLimit, tt.err.IsRateLimitError())
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("listing shops: %w", &econ.Error{Code: econ.ErrorCodePlayerNotFound, StatusCode: 404})
	assert.True(t, errors.Is(wrapped, econ.ErrNotFound))
	assert.True(t, econ.IsNotFound(wrapped))
	assert.False(t, errors.Is(wrapped, econ.ErrUnauthorized))

	assert.True(t, errors.Is(&econ.Error{StatusCode: 401}, econ.ErrUnauthorized))
	assert.True(t, errors.Is(&econ.Error{StatusCode: 403}, econ.ErrForbidden))
	assert.True(t, econ.IsRateLimited(&econ.Error{StatusCode: 429}))
	assert.False(t, econ.IsRateLimited(errors.New("plain")))

	apiErr, ok := econ.AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, econ.ErrorCodePlayerNotFound, apiErr.Code)
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("error envelope", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"name is required",` +
			`"details":{"field":"name"}},"meta":{"requestId":"req-7","version":"1.4.0"}}`)

		err := econ.ParseErrorResponse(422, body)
		assert.Equal(t, econ.ErrorCodeValidation, err.Code)
		assert.Equal(t, "name is required", err.Message)
		assert.Equal(t, 422, err.StatusCode)
		assert.Equal(t, "req-7", err.RequestID)
		assert.Equal(t, map[string]any{"field": "name"}, err.Details)
		require.NotNil(t, err.Envelope)
		assert.Equal(t, "1.4.0", err.Envelope.Meta.Version)
	})

	for name, body := range map[string]string{
		"html":          "<html>oops</html>",
		"empty":         "",
		"no error":      `{"success":false,"meta":{}}`,
		"no error code": `{"success":false,"error":{"message":"?"},"meta":{}}`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := econ.ParseErrorResponse(503, []byte(body))
			assert.Equal(t, econ.ErrorCodeUnknown, err.Code)
			assert.Equal(t, "HTTP 503: Service Unavailable", err.Message)
			assert.Equal(t, 503, err.StatusCode)
			assert.Nil(t, err.Envelope)
		})
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	err := &econ.TransportError{
		Method:   "GET",
		URL:      "https://api.econ.dev/v1/shops",
		Attempts: 4,
		Err:      context.DeadlineExceeded,
	}

	assert.Equal(t, "GET https://api.econ.dev/v1/shops: request failed after 4 attempt(s): context deadline exceeded", err.Error())
	assert.True(t, err.Timeout())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	refused := &econ.TransportError{Err: errors.New("connection refused")}
	assert.False(t, refused.Timeout())
}
