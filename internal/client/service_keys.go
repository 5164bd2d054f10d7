package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// ServiceKeysClient manages service keys.
type ServiceKeysClient struct {
	httpClient *internalhttp.Client
}

// NewServiceKeysClient creates a new service keys client.
func NewServiceKeysClient(httpClient *internalhttp.Client) *ServiceKeysClient {
	return &ServiceKeysClient{httpClient: httpClient}
}

// Create creates a service key for the given service instance.
func (c *ServiceKeysClient) Create(ctx context.Context, instanceGUID, name string) (*tap.Resource[tap.ServiceKey], error) {
	request := &tap.ServiceKeyCreateRequest{
		ServiceInstanceGUID: instanceGUID,
		Name:                name,
	}

	resp, err := c.httpClient.Post(ctx, constants.ServiceKeysPath, request)
	if err != nil {
		return nil, fmt.Errorf("creating service key %q for instance %s: %w", name, instanceGUID, err)
	}

	var key tap.Resource[tap.ServiceKey]
	if err := decodeBody(constants.ServiceKeysPath, resp.Body, &key); err != nil {
		return nil, err
	}

	return &key, nil
}

// Delete deletes a service key. The API returns an empty body on success;
// any content is reported as a failed delete.
func (c *ServiceKeysClient) Delete(ctx context.Context, keyGUID string) error {
	path := fmt.Sprintf("%s/%s", constants.ServiceKeysPath, keyGUID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting service key %s: %w", keyGUID, err)
	}

	return checkDeleted(path, resp.Body)
}

// PeekCredentials reads a service instance's connection credentials without
// leaving a live artifact: it creates a short-lived service key, extracts
// the credentials, and deletes the key again on every exit path. A failed
// delete is never swallowed; it is joined onto the returned error so the
// orphaned key is visible to the caller.
func (c *ServiceKeysClient) PeekCredentials(ctx context.Context, instanceGUID string) (credentials json.RawMessage, err error) {
	key, err := c.Create(ctx, instanceGUID, constants.EphemeralKeyName)
	if err != nil {
		return nil, err
	}

	defer func() {
		if deleteErr := c.Delete(ctx, key.Metadata.GUID); deleteErr != nil {
			credentials = nil
			err = errors.Join(err, deleteErr)
		}
	}()

	return key.Entity.Credentials, nil
}
