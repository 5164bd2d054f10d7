package client

import (
	"context"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// AppsClient reads application resources.
type AppsClient struct {
	httpClient *internalhttp.Client
}

// NewAppsClient creates a new apps client.
func NewAppsClient(httpClient *internalhttp.Client) *AppsClient {
	return &AppsClient{httpClient: httpClient}
}

// Get returns the application resource for the given GUID.
func (c *AppsClient) Get(ctx context.Context, guid string) (*tap.Resource[tap.App], error) {
	path := fmt.Sprintf("%s/%s", constants.AppsPath, guid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting app %s: %w", guid, err)
	}

	var app tap.Resource[tap.App]
	if err := decodeBody(path, resp.Body, &app); err != nil {
		return nil, err
	}

	return &app, nil
}

// GetName returns the application's name.
func (c *AppsClient) GetName(ctx context.Context, guid string) (string, error) {
	app, err := c.Get(ctx, guid)
	if err != nil {
		return "", err
	}

	return app.Entity.Name, nil
}
