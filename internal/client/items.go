package client

import (
	"context"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const itemsPath = "/v1/items"

// ItemsClient implements econ.ItemsClient.
type ItemsClient struct {
	executor econ.Executor
}

// NewItemsClient creates a new items client.
func NewItemsClient(executor econ.Executor) *ItemsClient {
	return &ItemsClient{executor: executor}
}

// List implements econ.ItemsClient.List.
func (c *ItemsClient) List(ctx context.Context, opts *econ.ListOptions) ([]econ.Item, error) {
	return fetch[[]econ.Item](ctx, c.executor, "listing items", itemsPath, getOptions(opts.Params()))
}

// Get implements econ.ItemsClient.Get.
func (c *ItemsClient) Get(ctx context.Context, id string) (*econ.Item, error) {
	return fetchOne[econ.Item](ctx, c.executor, "getting item", resourcePath(itemsPath, id), nil)
}

// Prices implements econ.ItemsClient.Prices.
func (c *ItemsClient) Prices(ctx context.Context, id string) ([]econ.Price, error) {
	return fetch[[]econ.Price](ctx, c.executor, "listing item prices", resourcePath(itemsPath, id, "prices"), nil)
}

// PriceHistory implements econ.ItemsClient.PriceHistory.
func (c *ItemsClient) PriceHistory(ctx context.Context, id string, opts *econ.PriceHistoryOptions) ([]econ.PricePoint, error) {
	return fetch[[]econ.PricePoint](ctx, c.executor, "getting price history",
		resourcePath(itemsPath, id, "price-history"), getOptions(opts.Params()))
}
