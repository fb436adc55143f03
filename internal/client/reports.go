package client

import (
	"context"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const reportsPath = "/v1/reports"

// ReportsClient implements econ.ReportsClient.
type ReportsClient struct {
	executor econ.Executor
}

// NewReportsClient creates a new reports client.
func NewReportsClient(executor econ.Executor) *ReportsClient {
	return &ReportsClient{executor: executor}
}

// Market implements econ.ReportsClient.Market.
func (c *ReportsClient) Market(ctx context.Context) (*econ.MarketReport, error) {
	return fetchOne[econ.MarketReport](ctx, c.executor, "getting market report", reportsPath+"/market", nil)
}

// Player implements econ.ReportsClient.Player.
func (c *ReportsClient) Player(ctx context.Context, id string) (*econ.PlayerReport, error) {
	return fetchOne[econ.PlayerReport](ctx, c.executor, "getting player report", resourcePath(reportsPath+"/players", id), nil)
}
