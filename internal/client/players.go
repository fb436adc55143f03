package client

import (
	"context"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const playersPath = "/v1/players"

// PlayersClient implements econ.PlayersClient.
type PlayersClient struct {
	executor econ.Executor
}

// NewPlayersClient creates a new players client.
func NewPlayersClient(executor econ.Executor) *PlayersClient {
	return &PlayersClient{executor: executor}
}

// List implements econ.PlayersClient.List.
func (c *PlayersClient) List(ctx context.Context, opts *econ.ListOptions) ([]econ.Player, error) {
	return fetch[[]econ.Player](ctx, c.executor, "listing players", playersPath, getOptions(opts.Params()))
}

// Get implements econ.PlayersClient.Get.
func (c *PlayersClient) Get(ctx context.Context, id string) (*econ.Player, error) {
	return fetchOne[econ.Player](ctx, c.executor, "getting player", resourcePath(playersPath, id), nil)
}

// Shops implements econ.PlayersClient.Shops.
func (c *PlayersClient) Shops(ctx context.Context, id string) ([]econ.Shop, error) {
	return fetch[[]econ.Shop](ctx, c.executor, "listing player shops", resourcePath(playersPath, id, "shops"), nil)
}
