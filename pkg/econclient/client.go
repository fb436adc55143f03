package econclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/econ-client/internal/client"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

// New creates an economy API client. An empty BaseURL selects the public
// endpoint; a BaseURL without a scheme is taken as https.
func New(ctx context.Context, config *econ.Config) (econ.Client, error) {
	if config == nil {
		return nil, econ.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeEndpoint(config.BaseURL)

	econClient, err := client.New(ctx, normalized.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return econClient, nil
}

// NewWithAPIKey creates a client for endpoint authenticated with apiKey and
// every other setting at its default.
func NewWithAPIKey(ctx context.Context, endpoint, apiKey string) (econ.Client, error) {
	return New(ctx, &econ.Config{BaseURL: endpoint, APIKey: apiKey})
}

// NormalizeEndpoint trims trailing slashes and adds https:// when no scheme
// is given. The empty string is returned unchanged.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return ""
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
