package tap

import "encoding/json"

// ConnectionParams holds the credentials and target used to talk to a TAP
// Cloud Foundry installation.
type ConnectionParams struct {
	APIURL   string `json:"api_url"            yaml:"api_url"`
	Username string `json:"username"           yaml:"username"`
	Password string `json:"password,omitempty" yaml:"-"`
	Org      string `json:"org"                yaml:"org"`
	Space    string `json:"space"              yaml:"space"`
}

// Metadata is the metadata half of a v2 API resource envelope.
type Metadata struct {
	GUID string `json:"guid" yaml:"guid"`
	URL  string `json:"url"  yaml:"url"`
}

// Resource is the generic v2 envelope: platform bookkeeping under
// "metadata", the typed payload under "entity".
type Resource[T any] struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Entity   T        `json:"entity"   yaml:"entity"`
}

// ListResponse is a v2 collection response.
type ListResponse[T any] struct {
	TotalResults int           `json:"total_results" yaml:"total_results"`
	Resources    []Resource[T] `json:"resources"     yaml:"resources"`
}

// ServiceInstance is the entity of /v2/service_instances resources.
type ServiceInstance struct {
	Name           string   `json:"name"             yaml:"name"`
	Tags           []string `json:"tags"             yaml:"tags"`
	ServicePlanURL string   `json:"service_plan_url" yaml:"service_plan_url"`
}

// ServicePlan is the entity of /v2/service_plans resources.
type ServicePlan struct {
	Name       string `json:"name"        yaml:"name"`
	ServiceURL string `json:"service_url" yaml:"service_url"`
}

// Service is the entity of /v2/services resources.
type Service struct {
	Label string `json:"label" yaml:"label"`
}

// ServiceKey is the entity of /v2/service_keys resources.
type ServiceKey struct {
	Name                string          `json:"name"                  yaml:"name"`
	ServiceInstanceGUID string          `json:"service_instance_guid" yaml:"service_instance_guid"`
	Credentials         json.RawMessage `json:"credentials"           yaml:"-"`
}

// ServiceKeyCreateRequest is the body of POST /v2/service_keys.
type ServiceKeyCreateRequest struct {
	ServiceInstanceGUID string `json:"service_instance_guid"`
	Name                string `json:"name"`
}

// ServiceBinding is the entity of /v2/service_bindings resources.
type ServiceBinding struct {
	AppGUID             string          `json:"app_guid"              yaml:"app_guid"`
	ServiceInstanceGUID string          `json:"service_instance_guid" yaml:"service_instance_guid"`
	Credentials         json.RawMessage `json:"credentials"           yaml:"-"`
}

// ServiceBindingCreateRequest is the body of POST /v2/service_bindings.
type ServiceBindingCreateRequest struct {
	ServiceInstanceGUID string `json:"service_instance_guid"`
	AppGUID             string `json:"app_guid"`
}

// App is the entity of /v2/apps resources.
type App struct {
	Name string `json:"name" yaml:"name"`
}

// UserProvidedServiceInstance is the entity of
// /v2/user_provided_service_instances resources.
type UserProvidedServiceInstance struct {
	Name        string          `json:"name"        yaml:"name"`
	Credentials json.RawMessage `json:"credentials" yaml:"-"`
}
