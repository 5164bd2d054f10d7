package client

import (
	"context"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// ServiceInstancesClient reads provisioned service instances.
type ServiceInstancesClient struct {
	httpClient *internalhttp.Client
}

// NewServiceInstancesClient creates a new service instances client.
func NewServiceInstancesClient(httpClient *internalhttp.Client) *ServiceInstancesClient {
	return &ServiceInstancesClient{httpClient: httpClient}
}

// List returns all service instances visible in the current target.
func (c *ServiceInstancesClient) List(ctx context.Context) (*tap.ListResponse[tap.ServiceInstance], error) {
	resp, err := c.httpClient.Get(ctx, constants.ServiceInstancesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing service instances: %w", err)
	}

	var instances tap.ListResponse[tap.ServiceInstance]
	if err := decodeBody(constants.ServiceInstancesPath, resp.Body, &instances); err != nil {
		return nil, err
	}

	return &instances, nil
}

// GetGUIDByName scans the instance collection for the entity with the given
// name and returns its GUID.
func (c *ServiceInstancesClient) GetGUIDByName(ctx context.Context, name string) (string, error) {
	instances, err := c.List(ctx)
	if err != nil {
		return "", err
	}

	for _, resource := range instances.Resources {
		if resource.Entity.Name == name {
			return resource.Metadata.GUID, nil
		}
	}

	return "", &tap.NotFoundError{Kind: "service instance", Name: name}
}

// Get returns the full resource for a named service instance.
func (c *ServiceInstancesClient) Get(ctx context.Context, name string) (*tap.Resource[tap.ServiceInstance], error) {
	guid, err := c.GetGUIDByName(ctx, name)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s", constants.ServiceInstancesPath, guid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting service instance %q: %w", name, err)
	}

	var instance tap.Resource[tap.ServiceInstance]
	if err := decodeBody(path, resp.Body, &instance); err != nil {
		return nil, err
	}

	return &instance, nil
}
