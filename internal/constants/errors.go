package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured  = errors.New("API key is required")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Argument errors.
var (
	ErrInvalidParamFormat = errors.New("invalid parameter format, expected key=value")
	ErrQueryPathNotFound  = errors.New("query path not found in response")
	ErrFilterNotBoolean   = errors.New("filter expression must evaluate to a boolean")
)
