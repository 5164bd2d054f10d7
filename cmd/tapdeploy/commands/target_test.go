//nolint:testpackage // Need access to internal helpers
package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
)

const targetOutput = `API endpoint:   https://api.example.com
API version:    2.65.0
user:           deployer
org:            seedorg
space:          seedspace
`

type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, _, _ string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)

	if len(args) > 0 && args[0] == "target" && len(args) == 1 {
		return []byte(targetOutput), nil
	}

	return nil, nil
}

func (r *recordingRunner) subcommands() []string {
	names := make([]string, 0, len(r.calls))
	for _, call := range r.calls {
		names = append(names, call[0])
	}

	return names
}

type noopPrompter struct{}

func (noopPrompter) Prompt(_, defaultValue string) string { return defaultValue }
func (noopPrompter) PromptPassword(_ string) string       { return "" }

func setTargetFlags(t *testing.T, values map[string]string) {
	t.Helper()

	keys := []string{"api", "user", "password", "org", "space"}
	for _, key := range keys {
		viper.Set(key, values[key])
	}

	viper.Set("config", filepath.Join(t.TempDir(), "config.yml"))

	t.Cleanup(func() {
		for _, key := range keys {
			viper.Set(key, "")
		}
		viper.Set("config", "")
	})
}

func TestRunTarget_UnchangedSessionOnlyReadsTarget(t *testing.T) {
	setTargetFlags(t, map[string]string{
		"api":   "https://api.example.com",
		"user":  "deployer",
		"org":   "seedorg",
		"space": "seedspace",
	})

	runner := &recordingRunner{}

	err := runTarget(context.Background(), cfcli.New(runner), noopPrompter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"target"}, runner.subcommands())
}

func TestRunTarget_PasswordForcesLogin(t *testing.T) {
	setTargetFlags(t, map[string]string{
		"api":      "https://api.example.com",
		"user":     "deployer",
		"password": "secret",
		"org":      "seedorg",
		"space":    "seedspace",
	})

	runner := &recordingRunner{}

	err := runTarget(context.Background(), cfcli.New(runner), noopPrompter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"target", "api", "auth", "target"}, runner.subcommands())
}

func TestRunTarget_SpaceChangeOnlyRetargets(t *testing.T) {
	setTargetFlags(t, map[string]string{
		"api":   "https://api.example.com",
		"user":  "deployer",
		"org":   "seedorg",
		"space": "production",
	})

	runner := &recordingRunner{}

	err := runTarget(context.Background(), cfcli.New(runner), noopPrompter{})
	require.NoError(t, err)
	require.Equal(t, []string{"target", "target"}, runner.subcommands())
	assert.Equal(t, []string{"target", "-o", "seedorg", "-s", "production"}, runner.calls[1])
}

func TestRunTarget_PersistsEffectiveParams(t *testing.T) {
	setTargetFlags(t, map[string]string{
		"api":      "https://api.example.com",
		"user":     "deployer",
		"password": "secret",
		"org":      "seedorg",
		"space":    "seedspace",
	})

	runner := &recordingRunner{}

	err := runTarget(context.Background(), cfcli.New(runner), noopPrompter{})
	require.NoError(t, err)

	config, err := loadSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, SessionConfig{
		API:          "https://api.example.com",
		Username:     "deployer",
		Organization: "seedorg",
		Space:        "seedspace",
	}, config)

	path, err := configFilePath()
	require.NoError(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.NotContains(t, strings.ToLower(string(data)), "secret")
}
