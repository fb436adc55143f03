package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

// fetch runs a call and returns the decoded data block. action prefixes any
// error so callers see which operation failed; the typed error stays
// reachable through errors.As.
func fetch[T any](ctx context.Context, executor econ.Executor, action, path string, opts *econ.RequestOptions) (T, error) {
	envelope, err := econ.ExecuteAs[T](ctx, executor, path, opts)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("%s: %w", action, err)
	}

	return envelope.Data, nil
}

// fetchOne is fetch for single resources, returned by pointer.
func fetchOne[T any](ctx context.Context, executor econ.Executor, action, path string, opts *econ.RequestOptions) (*T, error) {
	data, err := fetch[T](ctx, executor, action, path, opts)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

func getOptions(params econ.Params) *econ.RequestOptions {
	return &econ.RequestOptions{Method: http.MethodGet, Params: params}
}

func bodyOptions(method string, body any) *econ.RequestOptions {
	return &econ.RequestOptions{Method: method, Body: body}
}

// resourcePath joins a collection path and an escaped identifier.
func resourcePath(collection, id string, sub ...string) string {
	path := collection + "/" + url.PathEscape(id)
	for _, segment := range sub {
		path += "/" + segment
	}

	return path
}
