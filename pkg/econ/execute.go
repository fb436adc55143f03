package econ

import (
	"context"
	"encoding/json"
	"fmt"
)

// ExecuteAs runs a request through the executor and decodes the data block
// of the success envelope into T.
func ExecuteAs[T any](ctx context.Context, executor Executor, path string, opts *RequestOptions) (*Envelope[T], error) {
	raw, err := executor.Execute(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	return DecodeEnvelope[T](raw)
}

// DecodeEnvelope converts a raw envelope into a typed one.
func DecodeEnvelope[T any](raw *Envelope[json.RawMessage]) (*Envelope[T], error) {
	typed := &Envelope[T]{
		Success: raw.Success,
		Error:   raw.Error,
		Meta:    raw.Meta,
	}

	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return typed, nil
	}

	err := json.Unmarshal(raw.Data, &typed.Data)
	if err != nil {
		return nil, fmt.Errorf("parsing response data: %w", err)
	}

	return typed, nil
}
