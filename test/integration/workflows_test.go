//go:build integration

package integration

import (
	"strings"
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// WorkflowSuite drives the econ binary through read-only workflows.
type WorkflowSuite struct {
	suite.Suite

	runner *CommandRunner
}

func TestWorkflowSuite(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	suite.Run(t, &WorkflowSuite{runner: NewCommandRunner(config, t)})
}

func (s *WorkflowSuite) TestShopBrowsing() {
	var shops []econ.Shop
	s.Require().NoError(s.runner.RunJSON(&shops, "shops", "list", "--limit", "5"))

	if len(shops) == 0 {
		s.T().Skip("no shops available")
	}

	var shop econ.Shop
	s.Require().NoError(s.runner.RunJSON(&shop, "shops", "get", shops[0].ID))
	s.Equal(shops[0].ID, shop.ID)

	var prices []econ.Price
	s.Require().NoError(s.runner.RunJSON(&prices, "shops", "items", shops[0].ID))

	for _, price := range prices {
		s.Equal(shops[0].ID, price.ShopID)
	}
}

func (s *WorkflowSuite) TestMarketReport() {
	var report econ.MarketReport
	s.Require().NoError(s.runner.RunJSON(&report, "reports", "market"))
	s.GreaterOrEqual(report.TotalShops, report.ActiveShops)
}

func (s *WorkflowSuite) TestOutputFormats() {
	stdout, stderr, err := s.runner.Run("items", "list", "--limit", "3", "--output", "json")
	s.Require().NoError(err, stderr)
	AssertJSONOutput(s.T(), stdout)

	stdout, stderr, err = s.runner.Run("items", "list", "--limit", "3", "--output", "yaml")
	s.Require().NoError(err, stderr)
	s.NotContains(stdout, "{")

	_, _, err = s.runner.Run("items", "list", "--output", "xml")
	s.Error(err)
}

func (s *WorkflowSuite) TestRawCallAndRateLimit() {
	stdout, stderr, err := s.runner.Run("get", "/v1/items", "--param", "limit=1", "--query", "success", "--rate-limit")
	s.Require().NoError(err, stderr)

	s.Equal("true", strings.TrimSpace(stdout))
	s.Contains(stderr, "Rate limit:")
}

func (s *WorkflowSuite) TestErrorScenarios() {
	_, stderr, err := s.runner.Run("shops", "get", "integration-missing-shop")
	s.Require().Error(err)
	s.Contains(stderr, "NOT_FOUND")

	_, stderr, err = s.runner.Run("get", "/v1/items", "--param", "limit")
	s.Require().Error(err)
	s.Contains(stderr, "key=value")
}

func TestVersion(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	stdout, stderr, err := NewCommandRunner(config, t).Run("version", "--output", "json")
	require.NoError(t, err, stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, `"version"`)
}
