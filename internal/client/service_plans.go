package client

import (
	"context"
	"fmt"

	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// ServicePlansClient follows the plan and offering links embedded in
// service instance entities. Paths come from the entities themselves
// (service_plan_url, service_url), not from fixed collections.
type ServicePlansClient struct {
	httpClient *internalhttp.Client
}

// NewServicePlansClient creates a new service plans client.
func NewServicePlansClient(httpClient *internalhttp.Client) *ServicePlansClient {
	return &ServicePlansClient{httpClient: httpClient}
}

// GetPlan fetches the service plan resource at the given path.
func (c *ServicePlansClient) GetPlan(ctx context.Context, planPath string) (*tap.Resource[tap.ServicePlan], error) {
	resp, err := c.httpClient.Get(ctx, planPath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting service plan: %w", err)
	}

	var plan tap.Resource[tap.ServicePlan]
	if err := decodeBody(planPath, resp.Body, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

// GetService fetches the service offering resource at the given path.
func (c *ServicePlansClient) GetService(ctx context.Context, servicePath string) (*tap.Resource[tap.Service], error) {
	resp, err := c.httpClient.Get(ctx, servicePath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting service offering: %w", err)
	}

	var service tap.Resource[tap.Service]
	if err := decodeBody(servicePath, resp.Body, &service); err != nil {
		return nil, err
	}

	return &service, nil
}
