package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/internal/client"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectation describes the single request a test server accepts.
type expectation struct {
	method string
	path   string
	query  string
	body   string
	status int
	reply  string
}

func newTestServer(t *testing.T, exp expectation) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, exp.method, request.Method)
		assert.Equal(t, exp.path, request.URL.EscapedPath())
		assert.Equal(t, exp.query, request.URL.RawQuery)
		assert.Equal(t, "Bearer test-key", request.Header.Get("Authorization"))

		if exp.body != "" {
			body, err := io.ReadAll(request.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, exp.body, string(body))
		}

		status := exp.status
		if status == 0 {
			status = http.StatusOK
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(exp.reply))
	}))
	t.Cleanup(server.Close)

	return server
}

func newTestClient(t *testing.T, serverURL string) *client.Client {
	t.Helper()

	econClient, err := client.New(context.Background(), &econ.Config{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)

	return econClient
}

func ok(data string) string {
	return `{"success":true,"data":` + data + `,"meta":{"timestamp":"2026-01-01T00:00:00Z","elapsedMs":1,"version":"1.0","requestId":"req"}}`
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := client.New(context.Background(), nil)
	require.ErrorIs(t, err, econ.ErrConfigRequired)

	_, err = client.New(context.Background(), &econ.Config{})
	require.ErrorIs(t, err, client.ErrAPIEndpointRequired)

	_, err = client.New(context.Background(), &econ.Config{BaseURL: "ftp://example.com"})
	require.ErrorIs(t, err, econ.ErrInvalidBaseURL)

	_, err = client.New(context.Background(), &econ.Config{BaseURL: "https://api.econ.dev", MaxRetries: -2})
	require.ErrorIs(t, err, econ.ErrNegativeRetries)

	econClient, err := client.New(context.Background(), &econ.Config{BaseURL: "https://api.econ.dev", ValidateEnvelopes: true})
	require.NoError(t, err)
	assert.NotNil(t, econClient.Shops())
	assert.NotNil(t, econClient.HTTPClient())
	assert.Nil(t, econClient.LastRateLimit())

	var _ econ.Client = econClient
}

func TestClient_RetryDisabled(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attempts.Add(1)
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	econClient, err := client.New(context.Background(), &econ.Config{BaseURL: server.URL, DisableRetry: true})
	require.NoError(t, err)

	_, err = econClient.Shops().List(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())

	apiErr, isAPIErr := econ.AsError(err)
	require.True(t, isAPIErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "listing shops")
}

func TestClient_RetryBudgetFromConfig(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attempts.Add(1)
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	econClient, err := client.New(context.Background(), &econ.Config{
		BaseURL:    server.URL,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = econClient.Execute(context.Background(), "/v1/items", nil)
	require.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_CacheFromConfig(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attempts.Add(1)
		_, _ = writer.Write([]byte(ok(`{"id":"i-1","name":"Iron"}`)))
	}))
	defer server.Close()

	econClient, err := client.New(context.Background(), &econ.Config{
		BaseURL: server.URL,
		Cache:   econ.NewMemoryCache(10),
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		item, err := econClient.Items().Get(context.Background(), "i-1")
		require.NoError(t, err)
		assert.Equal(t, "Iron", item.Name)
	}

	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_NotFoundIsTyped(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, expectation{
		method: "GET",
		path:   "/v1/players/ghost",
		status: http.StatusNotFound,
		reply:  `{"success":false,"error":{"code":"PLAYER_NOT_FOUND","message":"Player not found"},"meta":{}}`,
	})

	_, err := newTestClient(t, server.URL).Players().Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, econ.ErrNotFound))

	apiErr, isAPIErr := econ.AsError(err)
	require.True(t, isAPIErr)
	assert.Equal(t, econ.ErrorCodePlayerNotFound, apiErr.Code)
}
