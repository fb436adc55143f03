package econ_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExecutor implements econ.Executor for testing.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, path string, opts *econ.RequestOptions) (*econ.Envelope[json.RawMessage], error) {
	args := m.Called(ctx, path, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*econ.Envelope[json.RawMessage]), args.Error(1)
}

func envelopeWith(data string) *econ.Envelope[json.RawMessage] {
	return &econ.Envelope[json.RawMessage]{Success: true, Data: json.RawMessage(data)}
}

func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	executor := &MockExecutor{}
	notFound := &econ.Error{Code: econ.ErrorCodeShopNotFound, StatusCode: 404}

	executor.On("Execute", mock.Anything, "/v1/shops/s-1", mock.Anything).Return(envelopeWith(`{"id":"s-1"}`), nil)
	executor.On("Execute", mock.Anything, "/v1/shops/s-2", mock.Anything).Return(nil, notFound)
	executor.On("Execute", mock.Anything, "/v1/shops", mock.Anything).Return(envelopeWith(`{"id":"s-3"}`), nil)
	executor.On("Execute", mock.Anything, "/v1/addresses/a-1", mock.Anything).Return(envelopeWith(``), nil)

	var callbacks atomic.Int32

	operations := econ.NewBatchBuilder().
		AddGet("first", "/v1/shops/s-1", nil).
		AddGet("missing", "/v1/shops/s-2", econ.NewParams().Add("expand", "items")).
		AddPost("create", "/v1/shops", map[string]string{"name": "Forge"}).
		AddDelete("remove", "/v1/addresses/a-1").
		AddOperation(econ.BatchOperation{ID: "callback", Path: "/v1/shops/s-1", Callback: func(result *econ.BatchResult) {
			callbacks.Add(1)
		}}).
		Build()

	results, err := econ.NewBatchExecutor(executor, 2).Execute(context.Background(), operations)
	require.NoError(t, err)
	require.Len(t, results, 5)

	ids := make([]string, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.ID)
	}

	assert.Equal(t, []string{"first", "missing", "create", "remove", "callback"}, ids)
	assert.True(t, results[0].Success())
	assert.JSONEq(t, `{"id":"s-1"}`, string(results[0].Envelope.Data))
	assert.False(t, results[1].Success())
	assert.True(t, econ.IsNotFound(results[1].Error))
	assert.True(t, results[2].Success())
	assert.Equal(t, int32(1), callbacks.Load())

	executor.AssertCalled(t, "Execute", mock.Anything, "/v1/shops", mock.MatchedBy(func(opts *econ.RequestOptions) bool {
		return opts.Method == "POST"
	}))
}

type slowExecutor struct {
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (s *slowExecutor) Execute(ctx context.Context, path string, opts *econ.RequestOptions) (*econ.Envelope[json.RawMessage], error) {
	current := s.active.Add(1)
	defer s.active.Add(-1)

	for {
		seen := s.maxSeen.Load()
		if current <= seen || s.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	time.Sleep(20 * time.Millisecond)

	return envelopeWith(`null`), nil
}

func TestBatchExecutor_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	executor := &slowExecutor{}
	builder := econ.NewBatchBuilder()

	for i := 0; i < 8; i++ {
		builder.AddGet("op", "/v1/items", nil)
	}

	results, err := econ.NewBatchExecutor(executor, 3).Execute(context.Background(), builder.Build())
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, executor.maxSeen.Load(), int32(3))
	assert.Positive(t, executor.maxSeen.Load())
}
