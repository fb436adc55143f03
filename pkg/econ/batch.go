package econ

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fivetwenty-io/econ-client/internal/constants"
	"golang.org/x/sync/errgroup"
)

// BatchOperation is a single call in a batch.
type BatchOperation struct {
	ID       string
	Path     string
	Options  *RequestOptions
	Callback func(result *BatchResult)
}

// BatchResult is the outcome of one batch operation.
type BatchResult struct {
	ID       string
	Envelope *Envelope[json.RawMessage]
	Error    error
	Duration time.Duration
}

// Success reports whether the operation returned a success envelope.
func (r BatchResult) Success() bool {
	return r.Error == nil
}

// BatchExecutor runs independent calls concurrently through an Executor.
type BatchExecutor struct {
	executor    Executor
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(executor Executor, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		executor:    executor,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout bounds each operation, retries included.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs the operations and returns one result per operation, in
// input order. A failing operation does not stop the others; the returned
// error is only set when ctx is cancelled.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)

	for index, operation := range operations {
		index, operation := index, operation
		group.Go(func() error {
			opCtx, cancel := context.WithTimeout(groupCtx, b.timeout)
			defer cancel()

			start := time.Now()
			envelope, err := b.executor.Execute(opCtx, operation.Path, operation.Options)

			results[index] = BatchResult{
				ID:       operation.ID,
				Envelope: envelope,
				Error:    err,
				Duration: time.Since(start),
			}

			if operation.Callback != nil {
				operation.Callback(&results[index])
			}

			return nil
		})
	}

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return results, err //nolint:wrapcheck
	}

	return results, nil
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// AddGet queues a GET of path.
func (b *BatchBuilder) AddGet(id, path string, params Params) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:      id,
		Path:    path,
		Options: &RequestOptions{Method: http.MethodGet, Params: params},
	})
}

// AddPost queues a POST of body to path.
func (b *BatchBuilder) AddPost(id, path string, body any) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:      id,
		Path:    path,
		Options: &RequestOptions{Method: http.MethodPost, Body: body},
	})
}

// AddDelete queues a DELETE of path.
func (b *BatchBuilder) AddDelete(id, path string) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:      id,
		Path:    path,
		Options: &RequestOptions{Method: http.MethodDelete},
	})
}

// AddOperation queues an arbitrary operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the queued operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
