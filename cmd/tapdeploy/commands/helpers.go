package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
	"github.com/trustedanalytics/tapdeploy/internal/client"
	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// ErrInvalidArgFormat flags a malformed --arg flag value.
var ErrInvalidArgFormat = errors.New("invalid argument format, expected key=value")

// SessionConfig is the persisted connection state. The password is never
// written to disk.
type SessionConfig struct {
	API          string `yaml:"api,omitempty"`
	Username     string `yaml:"username,omitempty"`
	Organization string `yaml:"organization,omitempty"`
	Space        string `yaml:"space,omitempty"`
}

func (c SessionConfig) connectionParams() tap.ConnectionParams {
	return tap.ConnectionParams{
		APIURL:   c.API,
		Username: c.Username,
		Org:      c.Organization,
		Space:    c.Space,
	}
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".tapdeploy", "config.yml"), nil
}

// loadSessionConfig reads the saved session state. A missing config file
// is not an error, it yields an empty session.
func loadSessionConfig() (SessionConfig, error) {
	var config SessionConfig

	path, err := configFilePath()
	if err != nil {
		return config, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return config, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

func saveSessionConfig(config SessionConfig) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// terminalPrompter reads connection fields interactively; passwords are
// read with echo disabled.
type terminalPrompter struct {
	reader *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) Prompt(field, defaultValue string) string {
	if defaultValue != "" {
		_, _ = fmt.Fprintf(os.Stderr, "%s [%s]: ", field, defaultValue)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "%s: ", field)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}

	return line
}

func (p *terminalPrompter) PromptPassword(field string) string {
	_, _ = fmt.Fprintf(os.Stderr, "%s: ", field)

	password, err := term.ReadPassword(syscall.Stdin)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return ""
	}

	return string(password)
}

// stderrLogger adapts the transport's Logger interface to plain stderr
// lines for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func clientOptions() []internalhttp.Option {
	var opts []internalhttp.Option

	if viper.GetBool("verbose") {
		opts = append(opts, internalhttp.WithLogger(stderrLogger{}), internalhttp.WithDebug(true))
	}

	return opts
}

// effectiveAPIURL returns the API endpoint from the --api flag, falling
// back to the active cf session, then the saved config.
func effectiveAPIURL(cf *cfcli.CLI) (string, error) {
	if apiURL := viper.GetString("api"); apiURL != "" {
		return apiURL, nil
	}

	if current, err := cf.Target(context.Background()); err == nil && current.APIURL != "" {
		return current.APIURL, nil
	}

	config, err := loadSessionConfig()
	if err != nil {
		return "", err
	}

	if config.API == "" {
		return "", tap.ErrAPIEndpointRequired
	}

	return config.API, nil
}

// newPlatformClient builds the resource client against the effective API
// endpoint, authenticating through the cf session token.
func newPlatformClient() (*client.Client, error) {
	cf := cfcli.New(cfcli.ExecRunner{})

	apiURL, err := effectiveAPIURL(cf)
	if err != nil {
		return nil, err
	}

	return client.New(apiURL, cf, clientOptions()...)
}

// parseUserArgs turns repeated key=value flags into the user argument map.
func parseUserArgs(pairs []string) (map[string]string, error) {
	args := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArgFormat, pair)
		}

		args[key] = value
	}

	return args, nil
}

// renderObject writes data as indented JSON or YAML per the --output flag.
// Callers handle the default table format themselves.
func renderObject(data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding JSON output: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding YAML output: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}
