// Package constants holds shared configuration defaults for the tapdeploy
// helpers.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ScratchFilePerm is the permission for short-lived files written
	// during a submission (session cookie, request body).
	ScratchFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// UploadHTTPTimeout is used for file uploads, which can be slow on
	// large artifacts.
	UploadHTTPTimeout = 5 * time.Minute
)

// Retry limits for the transport.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Platform API paths.
const (
	// ServiceInstancesPath lists provisioned service instances.
	ServiceInstancesPath = "/v2/service_instances"

	// ServiceKeysPath is the service key collection.
	ServiceKeysPath = "/v2/service_keys"

	// ServiceBindingsPath is the service binding collection.
	ServiceBindingsPath = "/v2/service_bindings"

	// AppsPath is the application collection.
	AppsPath = "/v2/apps"

	// UserProvidedPath is the user-provided service instance collection.
	UserProvidedPath = "/v2/user_provided_service_instances"
)

// Ephemeral service key naming.
const (
	// EphemeralKeyName is the name given to the short-lived service key
	// created to peek at instance credentials.
	EphemeralKeyName = "tapdeploy-peek-key"
)
