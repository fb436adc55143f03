package econ

import "encoding/json"

// Envelope is the top-level JSON object wrapping every API response.
// Success and error envelopes share the shape: exactly one of Data and Error
// is populated, Meta is always present.
type Envelope[T any] struct {
	Success bool       `json:"success"         yaml:"success"`
	Data    T          `json:"data,omitempty"  yaml:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty" yaml:"error,omitempty"`
	Meta    Meta       `json:"meta"            yaml:"meta"`
}

// Meta is the metadata block of an envelope.
type Meta struct {
	Timestamp string     `json:"timestamp"           yaml:"timestamp"`
	ElapsedMs float64    `json:"elapsedMs"           yaml:"elapsedMs"`
	Version   string     `json:"version"             yaml:"version"`
	RequestID string     `json:"requestId"           yaml:"requestId"`
	RateLimit *RateLimit `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
}

// ErrorBody is the error block of a failed envelope.
type ErrorBody struct {
	Code    string         `json:"code"              yaml:"code"`
	Message string         `json:"message"           yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// RateLimit is the rate-limit snapshot for the authenticated identity.
type RateLimit struct {
	Limit     int   `json:"limit"     yaml:"limit"`
	Remaining int   `json:"remaining" yaml:"remaining"`
	Reset     int64 `json:"reset"     yaml:"reset"`
}

// RawEnvelope is an envelope whose data block has not been decoded.
type RawEnvelope = Envelope[json.RawMessage]
