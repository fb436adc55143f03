package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const storagePath = "/v1/storage"

// StorageClient implements econ.StorageClient.
type StorageClient struct {
	executor econ.Executor
}

// NewStorageClient creates a new storage client.
func NewStorageClient(executor econ.Executor) *StorageClient {
	return &StorageClient{executor: executor}
}

// List implements econ.StorageClient.List.
func (c *StorageClient) List(ctx context.Context, opts *econ.StorageListOptions) ([]econ.StorageUnit, error) {
	return fetch[[]econ.StorageUnit](ctx, c.executor, "listing storage", storagePath, getOptions(opts.Params()))
}

// Get implements econ.StorageClient.Get.
func (c *StorageClient) Get(ctx context.Context, id string) (*econ.StorageUnit, error) {
	return fetchOne[econ.StorageUnit](ctx, c.executor, "getting storage unit", resourcePath(storagePath, id), nil)
}

// Update implements econ.StorageClient.Update.
func (c *StorageClient) Update(ctx context.Context, id string, request *econ.StorageUpdateRequest) (*econ.StorageUnit, error) {
	return fetchOne[econ.StorageUnit](ctx, c.executor, "updating storage unit",
		resourcePath(storagePath, id), bodyOptions(http.MethodPatch, request))
}
