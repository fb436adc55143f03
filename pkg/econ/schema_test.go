package econ_test

import (
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeValidator(t *testing.T) {
	t.Parallel()

	validator, err := econ.NewEnvelopeValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{
			name:  "success",
			body:  `{"success":true,"data":[1,2],"meta":{"timestamp":"2026-01-01T00:00:00Z","elapsedMs":3.5,"version":"1.0","requestId":"r"}}`,
			valid: true,
		},
		{
			name:  "error",
			body:  `{"success":false,"error":{"code":"NOT_FOUND","message":"gone"},"meta":{}}`,
			valid: true,
		},
		{name: "missing success", body: `{"data":{}}`},
		{name: "success not boolean", body: `{"success":"yes"}`},
		{name: "error without code", body: `{"success":false,"error":{"message":"gone"}}`},
		{name: "negative elapsed", body: `{"success":true,"meta":{"elapsedMs":-1}}`},
		{name: "rate limit not integer", body: `{"success":true,"meta":{"rateLimit":{"limit":"a","remaining":1,"reset":2}}}`},
		{name: "not json", body: `{`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.Validate([]byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, econ.ErrInvalidEnvelope)
		})
	}
}

func TestNewEnvelopeValidatorFromSchema(t *testing.T) {
	t.Parallel()

	_, err := econ.NewEnvelopeValidatorFromSchema([]byte(`{"type":`))
	require.Error(t, err)

	strict, err := econ.NewEnvelopeValidatorFromSchema([]byte(`{"type":"object","required":["success","meta"]}`))
	require.NoError(t, err)
	assert.Error(t, strict.Validate([]byte(`{"success":true}`)))
	assert.NoError(t, strict.Validate([]byte(`{"success":true,"meta":{}}`)))
}
