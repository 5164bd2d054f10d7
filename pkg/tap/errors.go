package tap

import (
	"errors"
	"fmt"
)

// APIError represents an in-band error returned by the platform API: a
// response body carrying an "error_code" field, or a non-empty body where
// the API contract expects an empty one. It keeps the request path and the
// raw body for diagnostics.
type APIError struct {
	Path        string `json:"-"`
	Code        string `json:"error_code"`
	Description string `json:"description"`
	Body        []byte `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API request %s failed: %s (%s)", e.Path, e.Description, e.Code)
	}

	if e.Description != "" {
		return fmt.Sprintf("API request %s failed: %s", e.Path, e.Description)
	}

	return fmt.Sprintf("API request %s failed: %s", e.Path, string(e.Body))
}

// NotFoundError reports that a named lookup produced no match in the
// retrieved collection.
type NotFoundError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// TransportError reports that the underlying HTTP call itself failed
// before a response body could be interpreted.
type TransportError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrAPIEndpointRequired    = errors.New("API endpoint is required")
	ErrUsernameRequired       = errors.New("username is required")
	ErrOrgRequired            = errors.New("organization is required")
	ErrSpaceRequired          = errors.New("space is required")
	ErrInstanceNameRequired   = errors.New("service instance name is required")
	ErrNoServiceInstances     = errors.New("no service instances specified")
	ErrNotLoggedIn            = errors.New("not logged in")
	ErrEmptyResponse          = errors.New("empty response body")
	ErrNoSessionCookie        = errors.New("no session cookie returned by login")
	ErrJarNotFound            = errors.New("no application jar found")
	ErrManifestAppNameMissing = errors.New("manifest does not declare an application name")
)

// IsAPIError checks whether err carries an in-band platform error.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsNotFound checks whether err is a failed named lookup.
func IsNotFound(err error) bool {
	nfErr := &NotFoundError{}

	return errors.As(err, &nfErr)
}

// IsTransport checks whether err originated in the HTTP transport rather
// than the API itself.
func IsTransport(err error) bool {
	trErr := &TransportError{}

	return errors.As(err, &trErr)
}
