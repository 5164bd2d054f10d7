//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint  string
	Username     string
	Password     string
	Org          string
	Space        string
	InstanceName string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint:  os.Getenv("TAPDEPLOY_API_ENDPOINT"),
		Username:     os.Getenv("TAPDEPLOY_USERNAME"),
		Password:     os.Getenv("TAPDEPLOY_PASSWORD"),
		Org:          os.Getenv("TAPDEPLOY_ORG"),
		Space:        os.Getenv("TAPDEPLOY_SPACE"),
		InstanceName: os.Getenv("TAPDEPLOY_INSTANCE"),
		Verbose:      os.Getenv("TAPDEPLOY_VERBOSE") == "true",
	}
}

// SkipUnlessConfigured skips the test when the environment does not point
// at a live platform.
func (c *TestConfig) SkipUnlessConfigured(t *testing.T) {
	t.Helper()

	if c.APIEndpoint == "" || c.Username == "" || c.Password == "" {
		t.Skip("Skipping integration test: TAPDEPLOY_API_ENDPOINT, TAPDEPLOY_USERNAME and TAPDEPLOY_PASSWORD must be set")
	}
}
