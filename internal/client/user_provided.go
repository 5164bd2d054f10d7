package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// UserProvidedClient reads user-provided service instances, whose
// credentials live directly on the instance instead of behind a key.
type UserProvidedClient struct {
	httpClient *internalhttp.Client
}

// NewUserProvidedClient creates a new user-provided service instance client.
func NewUserProvidedClient(httpClient *internalhttp.Client) *UserProvidedClient {
	return &UserProvidedClient{httpClient: httpClient}
}

// GetCredentials returns the instance's configured credentials object.
func (c *UserProvidedClient) GetCredentials(ctx context.Context, guid string) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/%s", constants.UserProvidedPath, guid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user-provided instance %s: %w", guid, err)
	}

	var instance tap.Resource[tap.UserProvidedServiceInstance]
	if err := decodeBody(path, resp.Body, &instance); err != nil {
		return nil, err
	}

	return instance.Entity.Credentials, nil
}

// GetBindings returns the bindings attached to the instance.
func (c *UserProvidedClient) GetBindings(ctx context.Context, guid string) ([]tap.Resource[tap.ServiceBinding], error) {
	path := fmt.Sprintf("%s/%s/service_bindings", constants.UserProvidedPath, guid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing bindings of user-provided instance %s: %w", guid, err)
	}

	var bindings tap.ListResponse[tap.ServiceBinding]
	if err := decodeBody(path, resp.Body, &bindings); err != nil {
		return nil, err
	}

	return bindings.Resources, nil
}
