// Package tap provides the domain types, errors, and target-resolution
// logic for deploying applications onto a Trusted Analytics Platform (TAP)
// Cloud Foundry installation.
//
// # Overview
//
// The tap package defines the v2 API envelope types (Resource, ListResponse)
// and the entities consumed by the deployment helpers (ServiceInstance,
// ServiceKey, ServiceBinding, ServicePlan, Service, App). Concrete resource
// clients over these types live in internal/client; the tapdeploy CLI wires
// configuration, transport, and prompting on top of them.
//
// # Target resolution
//
// Resolve reconciles the currently active session parameters against
// explicitly requested ones and decides whether a fresh login or an
// org/space retarget is needed:
//
//	decision := tap.Resolve(current, overrides, prompter)
//	if decision.LoginRequired { /* re-authenticate */ }
//	if decision.TargetRequired { /* re-select org and space */ }
//
// Resolve is a pure decision function: all terminal I/O goes through the
// injected Prompter, so callers can test it without a terminal.
//
// # Errors
//
// Failures are classified as APIError (the response body carried an in-band
// error indicator), NotFoundError (a named lookup missed), or TransportError
// (the HTTP call itself failed). Helpers IsAPIError, IsNotFound, and
// IsTransport branch on these cases.
package tap
