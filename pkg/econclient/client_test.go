package econclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/fivetwenty-io/econ-client/pkg/econclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                        "",
		"api.econ.dev":            "https://api.econ.dev",
		"api.econ.dev/":           "https://api.econ.dev",
		"http://localhost:8080//": "http://localhost:8080",
		" https://api.econ.dev ":  "https://api.econ.dev",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, econclient.NormalizeEndpoint(input), input)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := econclient.New(context.Background(), nil)
	require.ErrorIs(t, err, econ.ErrConfigRequired)

	config := &econ.Config{BaseURL: "api.econ.dev/"}
	econClient, err := econclient.New(context.Background(), config)
	require.NoError(t, err)
	require.NotNil(t, econClient)
	assert.Equal(t, "api.econ.dev/", config.BaseURL)

	econClient, err = econclient.New(context.Background(), &econ.Config{})
	require.NoError(t, err)
	assert.NotNil(t, econClient.Reports())
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/reports/market", request.URL.Path)
		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))

		writer.Header().Set("X-RateLimit-Limit", "100")
		writer.Header().Set("X-RateLimit-Remaining", "98")
		writer.Header().Set("X-RateLimit-Reset", "1767225600")
		_, _ = writer.Write([]byte(`{"success":true,"data":{"totalShops":3},"meta":{}}`))
	}))
	defer server.Close()

	econClient, err := econclient.NewWithAPIKey(context.Background(), server.URL+"/", "secret")
	require.NoError(t, err)

	report, err := econClient.Reports().Market(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalShops)
	assert.Equal(t, &econ.RateLimit{Limit: 100, Remaining: 98, Reset: 1767225600}, econClient.LastRateLimit())
}
