package econ_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExecuteAs(t *testing.T) {
	t.Parallel()

	executor := &MockExecutor{}
	executor.On("Execute", mock.Anything, "/v1/shops", mock.Anything).Return(&econ.Envelope[json.RawMessage]{
		Success: true,
		Data:    json.RawMessage(`[{"id":"s-1","name":"Forge","ownerId":"p-1"}]`),
		Meta:    econ.Meta{RequestID: "req-1"},
	}, nil)

	envelope, err := econ.ExecuteAs[[]econ.Shop](context.Background(), executor, "/v1/shops", nil)
	require.NoError(t, err)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Forge", envelope.Data[0].Name)
	assert.Equal(t, "p-1", envelope.Data[0].OwnerID)
	assert.Equal(t, "req-1", envelope.Meta.RequestID)
}

func TestExecuteAs_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	executor := &MockExecutor{}
	executor.On("Execute", mock.Anything, "/fail", mock.Anything).Return(nil, errBoom)
	executor.On("Execute", mock.Anything, "/mismatch", mock.Anything).Return(&econ.Envelope[json.RawMessage]{
		Success: true,
		Data:    json.RawMessage(`{"id":"s-1"}`),
	}, nil)

	_, err := econ.ExecuteAs[econ.Shop](context.Background(), executor, "/fail", nil)
	require.ErrorIs(t, err, errBoom)

	_, err = econ.ExecuteAs[[]econ.Shop](context.Background(), executor, "/mismatch", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response data")
}

func TestDecodeEnvelope_NullData(t *testing.T) {
	t.Parallel()

	envelope, err := econ.DecodeEnvelope[*econ.Player](&econ.Envelope[json.RawMessage]{Success: true, Data: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Nil(t, envelope.Data)
	assert.True(t, envelope.Success)
}
