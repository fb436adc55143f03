package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const shopsPath = "/v1/shops"

// ShopsClient implements econ.ShopsClient.
type ShopsClient struct {
	executor econ.Executor
}

// NewShopsClient creates a new shops client.
func NewShopsClient(executor econ.Executor) *ShopsClient {
	return &ShopsClient{executor: executor}
}

// List implements econ.ShopsClient.List.
func (c *ShopsClient) List(ctx context.Context, opts *econ.ShopListOptions) ([]econ.Shop, error) {
	return fetch[[]econ.Shop](ctx, c.executor, "listing shops", shopsPath, getOptions(opts.Params()))
}

// Get implements econ.ShopsClient.Get.
func (c *ShopsClient) Get(ctx context.Context, id string) (*econ.Shop, error) {
	return fetchOne[econ.Shop](ctx, c.executor, "getting shop", resourcePath(shopsPath, id), nil)
}

// Create implements econ.ShopsClient.Create.
func (c *ShopsClient) Create(ctx context.Context, request *econ.ShopCreateRequest) (*econ.Shop, error) {
	return fetchOne[econ.Shop](ctx, c.executor, "creating shop", shopsPath, bodyOptions(http.MethodPost, request))
}

// Update implements econ.ShopsClient.Update.
func (c *ShopsClient) Update(ctx context.Context, id string, request *econ.ShopUpdateRequest) (*econ.Shop, error) {
	return fetchOne[econ.Shop](ctx, c.executor, "updating shop", resourcePath(shopsPath, id), bodyOptions(http.MethodPatch, request))
}

// Delete implements econ.ShopsClient.Delete.
func (c *ShopsClient) Delete(ctx context.Context, id string) error {
	_, err := c.executor.Execute(ctx, resourcePath(shopsPath, id), &econ.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return fmt.Errorf("deleting shop: %w", err)
	}

	return nil
}

// Items implements econ.ShopsClient.Items.
func (c *ShopsClient) Items(ctx context.Context, id string) ([]econ.Price, error) {
	return fetch[[]econ.Price](ctx, c.executor, "listing shop items", resourcePath(shopsPath, id, "items"), nil)
}

// Changes implements econ.ShopsClient.Changes.
func (c *ShopsClient) Changes(ctx context.Context, id string, opts *econ.ChangeLogOptions) ([]econ.ChangeLogEntry, error) {
	return fetch[[]econ.ChangeLogEntry](ctx, c.executor, "listing shop changes",
		resourcePath(shopsPath, id, "changes"), getOptions(opts.Params()))
}
