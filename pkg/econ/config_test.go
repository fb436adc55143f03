package econ_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	headers := map[string]string{"X-Team": "blue"}
	config := &econ.Config{APIKey: "key", Headers: headers, RetryDelay: 250 * time.Millisecond}

	out := config.WithDefaults()
	assert.Equal(t, "https://api.econ.dev", out.BaseURL)
	assert.Equal(t, 30*time.Second, out.Timeout)
	assert.Equal(t, 3, out.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, out.RetryDelay)
	assert.Equal(t, "econ-client/1.0", out.UserAgent)
	assert.Equal(t, "key", out.APIKey)
	assert.True(t, out.RetryEnabled())
	assert.NotNil(t, out.Logger)

	out.Headers["X-Team"] = "red"
	assert.Equal(t, "blue", headers["X-Team"])
	assert.Empty(t, config.BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *econ.Config
		wantErr error
	}{
		{name: "defaults", config: econ.DefaultConfig()},
		{name: "http", config: &econ.Config{BaseURL: "http://localhost:8080"}},
		{name: "no scheme", config: &econ.Config{BaseURL: "api.econ.dev"}, wantErr: econ.ErrInvalidBaseURL},
		{name: "ftp", config: &econ.Config{BaseURL: "ftp://api.econ.dev"}, wantErr: econ.ErrInvalidBaseURL},
		{name: "negative retries", config: &econ.Config{BaseURL: "https://x.dev", MaxRetries: -1}, wantErr: econ.ErrNegativeRetries},
		{name: "negative timeout", config: &econ.Config{BaseURL: "https://x.dev", Timeout: -time.Second}, wantErr: econ.ErrNegativeDuration},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
