package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedanalytics/tapdeploy/internal/client"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

func TestAppsClient_GetName(t *testing.T) {
	t.Parallel()

	tapClient := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/apps/app-guid", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"metadata": map[string]string{"guid": "app-guid"},
			"entity":   map[string]string{"name": "space-shuttle"},
		})
	}))

	name, err := tapClient.Apps().GetName(context.Background(), "app-guid")
	require.NoError(t, err)
	assert.Equal(t, "space-shuttle", name)
}

func TestUserProvidedClient_GetCredentials(t *testing.T) {
	t.Parallel()

	tapClient := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/user_provided_service_instances/upsi-guid", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"metadata": map[string]string{"guid": "upsi-guid"},
			"entity": map[string]interface{}{
				"name":        "my-upsi",
				"credentials": map[string]string{"host": "broker.example.com"},
			},
		})
	}))

	credentials, err := tapClient.UserProvided().GetCredentials(context.Background(), "upsi-guid")
	require.NoError(t, err)
	assert.JSONEq(t, `{"host": "broker.example.com"}`, string(credentials))
}

func TestUserProvidedClient_GetBindings(t *testing.T) {
	t.Parallel()

	tapClient := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/user_provided_service_instances/upsi-guid/service_bindings", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"total_results": 1,
			"resources": []map[string]interface{}{
				{
					"metadata": map[string]string{"guid": "binding-guid", "url": "/v2/service_bindings/binding-guid"},
					"entity":   map[string]string{"app_guid": "app-guid"},
				},
			},
		})
	}))

	bindings, err := tapClient.UserProvided().GetBindings(context.Background(), "upsi-guid")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "app-guid", bindings[0].Entity.AppGUID)
}

func TestClient_New_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	_, err := client.New("", nil)
	require.ErrorIs(t, err, tap.ErrAPIEndpointRequired)
}
