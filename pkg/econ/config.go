package econ

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/fivetwenty-io/econ-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrInvalidBaseURL   = errors.New("base URL must be an absolute http or https URL")
	ErrNegativeRetries  = errors.New("max retries cannot be negative")
	ErrNegativeDuration = errors.New("timeouts and delays cannot be negative")
	ErrEmptyPath        = errors.New("request path is required")
)

// Executor issues one logical API call and returns the success envelope
// with its data block left undecoded.
type Executor interface {
	Execute(ctx context.Context, path string, opts *RequestOptions) (*Envelope[json.RawMessage], error)
}

// Client is the full economy API client.
type Client interface {
	Executor

	// LastRateLimit returns the most recently observed rate-limit snapshot,
	// or nil when no response has carried the rate-limit headers yet.
	LastRateLimit() *RateLimit

	Shops() ShopsClient
	Players() PlayersClient
	Items() ItemsClient
	Addresses() AddressesClient
	Storage() StorageClient
	Reports() ReportsClient
}

// Config represents client configuration for building a Client.
//
// Zero values are replaced by defaults when the client is constructed (see
// WithDefaults). The client keeps its own copy; mutating a Config after
// construction has no effect on existing clients.
//
// # Retries
//
// Retries are enabled unless DisableRetry is set. A failed attempt is retried
// when it is a transport failure (timeout, refused or reset connection), a
// 5xx response, or a rate-limit response (429 or the RATE_LIMIT_EXCEEDED
// error code). Attempt n (starting at 0) waits RetryDelay * 2^n before the
// next try; at most 1 + MaxRetries attempts are made.
type Config struct {
	// BaseURL: API root, e.g. "https://api.econ.dev". Request paths are
	// resolved against it.
	BaseURL string
	// APIKey: sent as "Authorization: Bearer <key>" unless a request
	// supplies its own key.
	APIKey string
	// Timeout: bound on each network attempt. A timed-out attempt counts as
	// a retryable transport failure.
	Timeout time.Duration
	// Headers: default headers added to every request.
	Headers map[string]string
	// DisableRetry: when true exactly one attempt is made.
	DisableRetry bool
	// MaxRetries: retries after the first attempt. 0 selects the default.
	MaxRetries int
	// RetryDelay: base backoff delay. 0 selects the default.
	RetryDelay time.Duration

	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Interceptors: optional request/response interceptor chain.
	Interceptors *InterceptorChain
	// Cache: optional response cache for GET requests.
	Cache Cache
	// CacheTTL: lifetime of cached responses. 0 selects the default.
	CacheTTL time.Duration
	// ValidateEnvelopes: validate success bodies against the envelope schema.
	ValidateEnvelopes bool
	// HTTPClient: optional base HTTP client (transport, TLS). Its Timeout is
	// replaced by Timeout.
	HTTPClient *http.Client
}

// DefaultConfig returns a configuration populated with every default.
func DefaultConfig() *Config {
	return (&Config{}).WithDefaults()
}

// WithDefaults returns a copy of the configuration with unset fields filled.
func (c *Config) WithDefaults() *Config {
	out := *c

	if out.BaseURL == "" {
		out.BaseURL = constants.DefaultBaseURL
	}

	if out.Timeout == 0 {
		out.Timeout = constants.DefaultHTTPTimeout
	}

	if out.MaxRetries == 0 {
		out.MaxRetries = constants.DefaultRetryMax
	}

	if out.RetryDelay == 0 {
		out.RetryDelay = constants.DefaultRetryDelay
	}

	if out.UserAgent == "" {
		out.UserAgent = constants.DefaultUserAgent
	}

	if out.CacheTTL == 0 {
		out.CacheTTL = constants.DefaultCacheTTL
	}

	if out.Logger == nil {
		out.Logger = NopLogger{}
	}

	out.Headers = maps.Clone(c.Headers)
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}

	return &out
}

// Validate reports configuration values that can never work.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.MaxRetries < 0 {
		return ErrNegativeRetries
	}

	if c.Timeout < 0 || c.RetryDelay < 0 || c.CacheTTL < 0 {
		return ErrNegativeDuration
	}

	return nil
}

// RetryEnabled reports whether failed attempts may be retried.
func (c *Config) RetryEnabled() bool {
	return !c.DisableRetry
}
