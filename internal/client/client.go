// Package client implements the TAP platform resource clients over the v2
// REST API. Every response body is inspected for the platform's in-band
// error indicator, not just the transport status.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// Client bundles the per-resource clients sharing one transport.
type Client struct {
	httpClient *internalhttp.Client

	serviceInstances *ServiceInstancesClient
	servicePlans     *ServicePlansClient
	serviceKeys      *ServiceKeysClient
	serviceBindings  *ServiceBindingsClient
	apps             *AppsClient
	userProvided     *UserProvidedClient
}

// New creates a client for the given API endpoint.
func New(apiURL string, tokens internalhttp.TokenSource, opts ...internalhttp.Option) (*Client, error) {
	if apiURL == "" {
		return nil, tap.ErrAPIEndpointRequired
	}

	httpClient := internalhttp.NewClient(apiURL, tokens, opts...)

	return NewWithHTTPClient(httpClient), nil
}

// NewWithHTTPClient creates a client over an existing transport.
func NewWithHTTPClient(httpClient *internalhttp.Client) *Client {
	client := &Client{httpClient: httpClient}
	client.serviceInstances = NewServiceInstancesClient(httpClient)
	client.servicePlans = NewServicePlansClient(httpClient)
	client.serviceKeys = NewServiceKeysClient(httpClient)
	client.serviceBindings = NewServiceBindingsClient(httpClient)
	client.apps = NewAppsClient(httpClient)
	client.userProvided = NewUserProvidedClient(httpClient)

	return client
}

// ServiceInstances returns the service instance client.
func (c *Client) ServiceInstances() *ServiceInstancesClient {
	return c.serviceInstances
}

// ServicePlans returns the service plan and offering client.
func (c *Client) ServicePlans() *ServicePlansClient {
	return c.servicePlans
}

// ServiceKeys returns the service key client.
func (c *Client) ServiceKeys() *ServiceKeysClient {
	return c.serviceKeys
}

// ServiceBindings returns the service binding client.
func (c *Client) ServiceBindings() *ServiceBindingsClient {
	return c.serviceBindings
}

// Apps returns the application client.
func (c *Client) Apps() *AppsClient {
	return c.apps
}

// UserProvided returns the user-provided service instance client.
func (c *Client) UserProvided() *UserProvidedClient {
	return c.userProvided
}

// PeekCredentials resolves a service instance by name and returns its
// credentials via a short-lived service key.
func (c *Client) PeekCredentials(ctx context.Context, instanceName string) (json.RawMessage, error) {
	guid, err := c.serviceInstances.GetGUIDByName(ctx, instanceName)
	if err != nil {
		return nil, err
	}

	return c.serviceKeys.PeekCredentials(ctx, guid)
}

// decodeBody unmarshals a response body into out after checking it for the
// platform's in-band error indicator. The indicator wins over the transport
// status: a 200 carrying an "error_code" field is still a failure.
func decodeBody(path string, body []byte, out interface{}) error {
	if err := checkInBandError(path, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}

	return nil
}

func checkInBandError(path string, body []byte) error {
	var probe struct {
		ErrorCode   string `json:"error_code"`
		Description string `json:"description"`
	}

	if err := json.Unmarshal(body, &probe); err == nil && probe.ErrorCode != "" {
		return &tap.APIError{
			Path:        path,
			Code:        probe.ErrorCode,
			Description: probe.Description,
			Body:        body,
		}
	}

	return nil
}

// checkDeleted enforces the deletion contract: the API returns an empty
// body on success, so any content means the delete did not happen.
func checkDeleted(path string, body []byte) error {
	if len(body) > 0 {
		return &tap.APIError{Path: path, Body: body}
	}

	return nil
}
