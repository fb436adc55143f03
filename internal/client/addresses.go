package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
)

const addressesPath = "/v1/addresses"

// AddressesClient implements econ.AddressesClient.
type AddressesClient struct {
	executor econ.Executor
}

// NewAddressesClient creates a new addresses client.
func NewAddressesClient(executor econ.Executor) *AddressesClient {
	return &AddressesClient{executor: executor}
}

// List implements econ.AddressesClient.List.
func (c *AddressesClient) List(ctx context.Context, opts *econ.ListOptions) ([]econ.Address, error) {
	return fetch[[]econ.Address](ctx, c.executor, "listing addresses", addressesPath, getOptions(opts.Params()))
}

// Get implements econ.AddressesClient.Get.
func (c *AddressesClient) Get(ctx context.Context, id string) (*econ.Address, error) {
	return fetchOne[econ.Address](ctx, c.executor, "getting address", resourcePath(addressesPath, id), nil)
}

// Create implements econ.AddressesClient.Create.
func (c *AddressesClient) Create(ctx context.Context, request *econ.AddressCreateRequest) (*econ.Address, error) {
	return fetchOne[econ.Address](ctx, c.executor, "creating address", addressesPath, bodyOptions(http.MethodPost, request))
}

// Delete implements econ.AddressesClient.Delete.
func (c *AddressesClient) Delete(ctx context.Context, id string) error {
	_, err := c.executor.Execute(ctx, resourcePath(addressesPath, id), &econ.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return fmt.Errorf("deleting address: %w", err)
	}

	return nil
}
