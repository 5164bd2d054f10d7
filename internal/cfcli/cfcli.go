// Package cfcli wraps the Cloud Foundry CLI, which owns the ambient
// session state (current API, user, org, space) the deployment helpers
// reconcile against. All process execution goes through the Runner
// interface so callers can test without a cf binary.
package cfcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// Binary is the name of the Cloud Foundry CLI executable.
const Binary = "cf"

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// CLI wraps the cf binary.
type CLI struct {
	runner Runner
}

// New creates a CLI over the given runner.
func New(runner Runner) *CLI {
	return &CLI{runner: runner}
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	output, err := c.runner.Run(ctx, "", Binary, args...)
	if err != nil {
		return nil, &tap.TransportError{Path: Binary + " " + args[0], Err: err}
	}

	return output, nil
}

// API points the CLI session at an API endpoint.
func (c *CLI) API(ctx context.Context, apiURL string) error {
	_, err := c.run(ctx, "api", apiURL)

	return err
}

// Auth authenticates the CLI session.
func (c *CLI) Auth(ctx context.Context, username, password string) error {
	_, err := c.run(ctx, "auth", username, password)

	return err
}

// SetTarget selects the org and space operations are scoped to.
func (c *CLI) SetTarget(ctx context.Context, org, space string) error {
	_, err := c.run(ctx, "target", "-o", org, "-s", space)

	return err
}

// Login re-points, re-authenticates, and re-targets the session in one go.
// Authentication resets the CLI's target state, so the target is always
// re-selected afterwards.
func (c *CLI) Login(ctx context.Context, params tap.ConnectionParams) error {
	if err := c.API(ctx, params.APIURL); err != nil {
		return err
	}

	if err := c.Auth(ctx, params.Username, params.Password); err != nil {
		return err
	}

	return c.SetTarget(ctx, params.Org, params.Space)
}

// Target returns the session's current connection parameters as reported
// by "cf target". A session with no target yields empty fields.
func (c *CLI) Target(ctx context.Context) (tap.ConnectionParams, error) {
	output, err := c.run(ctx, "target")
	if err != nil {
		return tap.ConnectionParams{}, err
	}

	return parseTarget(output), nil
}

// OAuthToken returns the session's bearer token, without the "bearer "
// prefix the CLI prints.
func (c *CLI) OAuthToken(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "oauth-token")
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(output))
	token = strings.TrimPrefix(token, "bearer ")

	if token == "" {
		return "", tap.ErrNotLoggedIn
	}

	return token, nil
}

// OrgGUID returns the GUID of a named organization.
func (c *CLI) OrgGUID(ctx context.Context, orgName string) (string, error) {
	output, err := c.run(ctx, "org", orgName, "--guid")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// Push deploys the application described by a manifest, running from the
// project directory.
func (c *CLI) Push(ctx context.Context, projectDir, manifestPath string, options ...string) error {
	args := append([]string{"push", "-f", manifestPath}, options...)

	_, err := c.runner.Run(ctx, projectDir, Binary, args...)
	if err != nil {
		return &tap.TransportError{Path: Binary + " push", Err: err}
	}

	return nil
}

// Token adapts the CLI session to the transport's TokenSource.
func (c *CLI) Token(ctx context.Context) (string, error) {
	return c.OAuthToken(ctx)
}

// parseTarget extracts connection parameters from "cf target" output, e.g.
//
//	api endpoint:   https://api.example.com
//	api version:    2.141.0
//	user:           admin
//	org:            demo-org
//	space:          demo-space
func parseTarget(output []byte) tap.ConnectionParams {
	var params tap.ConnectionParams

	for _, line := range strings.Split(string(output), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "api endpoint":
			params.APIURL = value
		case "user":
			params.Username = value
		case "org":
			params.Org = value
		case "space":
			params.Space = value
		}
	}

	return params
}
