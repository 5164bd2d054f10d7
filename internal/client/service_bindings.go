package client

import (
	"context"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// ServiceBindingsClient manages bindings between service instances and
// applications.
type ServiceBindingsClient struct {
	httpClient *internalhttp.Client
}

// NewServiceBindingsClient creates a new service bindings client.
func NewServiceBindingsClient(httpClient *internalhttp.Client) *ServiceBindingsClient {
	return &ServiceBindingsClient{httpClient: httpClient}
}

// Create binds a service instance to an application.
func (c *ServiceBindingsClient) Create(ctx context.Context, instanceGUID, appGUID string) (*tap.Resource[tap.ServiceBinding], error) {
	request := &tap.ServiceBindingCreateRequest{
		ServiceInstanceGUID: instanceGUID,
		AppGUID:             appGUID,
	}

	resp, err := c.httpClient.Post(ctx, constants.ServiceBindingsPath, request)
	if err != nil {
		return nil, fmt.Errorf("binding instance %s to app %s: %w", instanceGUID, appGUID, err)
	}

	var binding tap.Resource[tap.ServiceBinding]
	if err := decodeBody(constants.ServiceBindingsPath, resp.Body, &binding); err != nil {
		return nil, err
	}

	return &binding, nil
}

// Delete removes a binding, addressed by the URL the platform recorded in
// its metadata. An empty response body signals success.
func (c *ServiceBindingsClient) Delete(ctx context.Context, binding *tap.Resource[tap.ServiceBinding]) error {
	resp, err := c.httpClient.Delete(ctx, binding.Metadata.URL)
	if err != nil {
		return fmt.Errorf("deleting service binding %s: %w", binding.Metadata.GUID, err)
	}

	return checkDeleted(binding.Metadata.URL, resp.Body)
}
