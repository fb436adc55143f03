package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Endpoint defaults.
const (
	// DefaultBaseURL is the public economy API endpoint.
	DefaultBaseURL = "https://api.econ.dev"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "econ-client/1.0"

	// ContentTypeJSON is the media type of every request and response body.
	ContentTypeJSON = "application/json"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds a single network attempt.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default number of retries after the first attempt.
	DefaultRetryMax = 3

	// DefaultRetryDelay is the base delay; attempt n waits DefaultRetryDelay * 2^n.
	DefaultRetryDelay = 1 * time.Second

	// MaxBackoffShift caps the exponent so delays cannot overflow.
	MaxBackoffShift = 30
)

// Rate-limit response headers published by the API.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// Request headers.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
	HeaderETag          = "ETag"

	// BearerPrefix precedes the API key in the Authorization header.
	BearerPrefix = "Bearer "
)

// API error codes carried in the error envelope.
const (
	ErrorCodeUnknown        = "UNKNOWN_ERROR"
	ErrorCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeShopNotFound   = "SHOP_NOT_FOUND"
	ErrorCodePlayerNotFound = "PLAYER_NOT_FOUND"
	ErrorCodeItemNotFound   = "ITEM_NOT_FOUND"
	ErrorCodeUnauthorized   = "UNAUTHORIZED"
	ErrorCodeForbidden      = "FORBIDDEN"
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeInternal       = "INTERNAL_ERROR"
	ErrorCodeNotFoundSuffix = "_NOT_FOUND"
)

// HTTP status boundaries used to classify responses.
const (
	HTTPStatusOK                  = 200
	HTTPStatusMultipleChoices     = 300
	HTTPStatusBadRequest          = 400
	HTTPStatusInternalServerError = 500
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is used when caching is enabled without an explicit TTL.
	DefaultCacheTTL = 1 * time.Minute

	// DefaultNATSBucket is the JetStream key-value bucket for shared caching.
	DefaultNATSBucket = "econ-cache"

	// NATSConnectTimeout bounds the initial NATS connection.
	NATSConnectTimeout = 5 * time.Second
)

// Pagination defaults.
const (
	// DefaultPageSize is the number of records requested by list commands.
	DefaultPageSize = 50
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"

	// JSONIndentSize is the indentation for json and yaml output.
	JSONIndentSize = 2
)

// CLI display constants.
const (
	// NotAvailable is printed for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces API keys in displayed configuration.
	MaskedSecret = "***"

	// MinimumArgumentCount is the arity of KEY VALUE commands.
	MinimumArgumentCount = 2

	// TimestampLayout is used when printing timestamps in tables.
	TimestampLayout = "2006-01-02 15:04:05"
)
