//nolint:testpackage // Need access to internal helpers
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesCommand(t *testing.T) {
	t.Parallel()

	cmd := NewServicesCommand()
	assert.Equal(t, "services", cmd.Use)

	subcommands := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Name())
	}

	assert.Contains(t, subcommands, "list")
	assert.Contains(t, subcommands, "guid")
	assert.Contains(t, subcommands, "credentials")
}

func TestNewGearpumpCommand(t *testing.T) {
	t.Parallel()

	cmd := NewGearpumpCommand()
	assert.Equal(t, "gearpump", cmd.Use)

	submit, _, err := cmd.Find([]string{"submit"})
	require.NoError(t, err)
	assert.Equal(t, "submit", submit.Name())
	assert.NotNil(t, submit.Flags().Lookup("gearpump-instance"))
	assert.NotNil(t, submit.Flags().Lookup("instance"))
	assert.NotNil(t, submit.Flags().Lookup("arg"))
	assert.NotNil(t, submit.Flags().Lookup("jar"))
}

func TestNewPushCommand(t *testing.T) {
	t.Parallel()

	cmd := NewPushCommand()
	assert.Equal(t, "push", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("project-dir"))
	assert.NotNil(t, cmd.Flags().Lookup("manifest"))
}

func TestNewUploadCommand(t *testing.T) {
	t.Parallel()

	cmd := NewUploadCommand()
	assert.Equal(t, "upload FILE", cmd.Use)
	assert.Equal(t, "other", cmd.Flags().Lookup("category").DefValue)
}

func TestNewTargetCommand(t *testing.T) {
	t.Parallel()

	cmd := NewTargetCommand()
	assert.Equal(t, "target", cmd.Use)
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCommand("1.2.3", "abc", "today")
	assert.Equal(t, "version", cmd.Use)
}
