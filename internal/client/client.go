package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/econ-client/internal/http"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
)

// Client implements the econ.Client interface.
type Client struct {
	httpClient *http.Client
	logger     econ.Logger

	// Resource clients
	shops     econ.ShopsClient
	players   econ.PlayersClient
	items     econ.ItemsClient
	addresses econ.AddressesClient
	storage   econ.StorageClient
	reports   econ.ReportsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *econ.Config) ([]http.Option, error) {
	httpOpts := []http.Option{
		http.WithAPIKey(config.APIKey),
		http.WithHeaders(config.Headers),
		http.WithTimeout(config.Timeout),
		http.WithLogger(config.Logger),
		http.WithDebug(config.Debug),
		http.WithUserAgent(config.UserAgent),
	}

	if config.RetryEnabled() {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.MaxRetries, config.RetryDelay, 0))
	} else {
		httpOpts = append(httpOpts, http.WithoutRetry())
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.Cache != nil {
		httpOpts = append(httpOpts, http.WithCache(config.Cache, config.CacheTTL))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.ValidateEnvelopes {
		validator, err := econ.NewEnvelopeValidator()
		if err != nil {
			return nil, fmt.Errorf("creating envelope validator: %w", err)
		}

		httpOpts = append(httpOpts, http.WithEnvelopeValidator(validator))
	}

	return httpOpts, nil
}

// New creates a new economy API client. Unset config fields take their
// defaults; the config is copied and not retained.
func New(ctx context.Context, config *econ.Config) (*Client, error) {
	if config == nil {
		return nil, econ.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrAPIEndpointRequired
	}

	config = config.WithDefaults()

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient, err := http.NewClient(config.BaseURL, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	client.logger.Debug("Client initialized", map[string]interface{}{
		"base_url":    config.BaseURL,
		"retry":       config.RetryEnabled(),
		"max_retries": config.MaxRetries,
		"timeout":     config.Timeout.String(),
		"cache":       config.Cache != nil,
	})

	return client, nil
}

// Execute implements econ.Executor.
func (c *Client) Execute(ctx context.Context, path string, opts *econ.RequestOptions) (*econ.Envelope[json.RawMessage], error) {
	return c.httpClient.Execute(ctx, path, opts) //nolint:wrapcheck
}

// LastRateLimit implements econ.Client.LastRateLimit.
func (c *Client) LastRateLimit() *econ.RateLimit {
	return c.httpClient.LastRateLimit()
}

// HTTPClient exposes the underlying pipeline for raw calls.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Shops implements econ.Client.Shops.
func (c *Client) Shops() econ.ShopsClient {
	return c.shops
}

// Players implements econ.Client.Players.
func (c *Client) Players() econ.PlayersClient {
	return c.players
}

// Items implements econ.Client.Items.
func (c *Client) Items() econ.ItemsClient {
	return c.items
}

// Addresses implements econ.Client.Addresses.
func (c *Client) Addresses() econ.AddressesClient {
	return c.addresses
}

// Storage implements econ.Client.Storage.
func (c *Client) Storage() econ.StorageClient {
	return c.storage
}

// Reports implements econ.Client.Reports.
func (c *Client) Reports() econ.ReportsClient {
	return c.reports
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.shops = NewShopsClient(c)
	c.players = NewPlayersClient(c)
	c.items = NewItemsClient(c)
	c.addresses = NewAddressesClient(c)
	c.storage = NewStorageClient(c)
	c.reports = NewReportsClient(c)
}
