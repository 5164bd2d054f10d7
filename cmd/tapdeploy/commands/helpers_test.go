//nolint:testpackage // Need access to internal helpers
package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

func TestParseUserArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pairs    []string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "empty",
			pairs:    nil,
			expected: map[string]string{},
		},
		{
			name:     "single pair",
			pairs:    []string{"inputTopic=events"},
			expected: map[string]string{"inputTopic": "events"},
		},
		{
			name:  "multiple pairs with empty value",
			pairs: []string{"inputTopic=events", "checkpoint="},
			expected: map[string]string{
				"inputTopic": "events",
				"checkpoint": "",
			},
		},
		{
			name:     "value containing equals",
			pairs:    []string{"filter=type=alert"},
			expected: map[string]string{"filter": "type=alert"},
		},
		{
			name:    "missing separator",
			pairs:   []string{"inputTopic"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args, err := parseUserArgs(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgFormat))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestSessionConfigRoundTrip(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.Set("config", configFile)

	defer viper.Set("config", "")

	saved := SessionConfig{
		API:          "https://api.example.com",
		Username:     "deployer",
		Organization: "seedorg",
		Space:        "seedspace",
	}
	require.NoError(t, saveSessionConfig(saved))

	loaded, err := loadSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}

func TestLoadSessionConfig_MissingFile(t *testing.T) {
	viper.Set("config", filepath.Join(t.TempDir(), "config.yml"))

	defer viper.Set("config", "")

	config, err := loadSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, SessionConfig{}, config)
}

func TestManifestAppName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	content := `applications:
- name: space-shuttle-demo
  memory: 1G
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	name, err := manifestAppName(path)
	require.NoError(t, err)
	assert.Equal(t, "space-shuttle-demo", name)
}

func TestManifestAppName_MissingName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	require.NoError(t, os.WriteFile(path, []byte("applications:\n- memory: 1G\n"), 0o600))

	_, err := manifestAppName(path)
	require.ErrorIs(t, err, tap.ErrManifestAppNameMissing)
}

func TestFindJar(t *testing.T) {
	t.Parallel()

	projectDir := t.TempDir()
	targetDir := filepath.Join(projectDir, "target")
	require.NoError(t, os.MkdirAll(targetDir, 0o750))

	jarPath := filepath.Join(targetDir, "app-1.0-jar-with-dependencies.jar")
	require.NoError(t, os.WriteFile(jarPath, []byte("jar"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(targetDir, "app-1.0.jar"), []byte("thin"), 0o600))

	found, err := findJar(projectDir)
	require.NoError(t, err)
	assert.Equal(t, jarPath, found)
}

func TestFindJar_NotFound(t *testing.T) {
	t.Parallel()

	_, err := findJar(t.TempDir())
	require.ErrorIs(t, err, tap.ErrJarNotFound)
}
