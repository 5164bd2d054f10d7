package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trustedanalytics/tapdeploy/internal/gearpump"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// gearpumpCredentials is the shape of a Gearpump instance's credentials as
// exposed through a service key.
type gearpumpCredentials struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	DashboardURL string `json:"dashboardUrl"`
}

// NewGearpumpCommand creates the gearpump command group.
func NewGearpumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gearpump",
		Short: "Deploy applications to a Gearpump instance",
	}

	cmd.AddCommand(newGearpumpSubmitCommand())

	return cmd
}

func newGearpumpSubmitCommand() *cobra.Command {
	var (
		gearpumpInstance string
		projectDir       string
		jarPath          string
		instances        []string
		argPairs         []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an application jar to Gearpump",
		Long: `Assemble the submission payload from the given service instances,
log in to the Gearpump dashboard and submit the application jar.

The payload maps each instance's service label to its name, plan, tags
and credentials; credentials are read through a short-lived service key.
Extra application arguments are passed as key=value pairs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(instances) == 0 {
				return tap.ErrNoServiceInstances
			}

			userArgs, err := parseUserArgs(argPairs)
			if err != nil {
				return err
			}

			if jarPath == "" {
				jarPath, err = findJar(projectDir)
				if err != nil {
					return err
				}
			}

			if _, ok := userArgs["appname"]; !ok {
				if appName, err := manifestAppName(filepath.Join(projectDir, "manifest.yml")); err == nil {
					userArgs["appname"] = appName
				}
			}

			tapClient, err := newPlatformClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			body, err := gearpump.NewAssembler(tapClient).BuildSubmitBody(ctx, instances, userArgs)
			if err != nil {
				return err
			}

			rawCredentials, err := tapClient.PeekCredentials(ctx, gearpumpInstance)
			if err != nil {
				return err
			}

			var credentials gearpumpCredentials
			if err := json.Unmarshal(rawCredentials, &credentials); err != nil {
				return fmt.Errorf("decoding gearpump credentials: %w", err)
			}

			gearpumpClient := gearpump.NewClient(credentials.DashboardURL, projectDir, clientOptions()...)

			if err := gearpumpClient.Login(ctx, credentials.Username, credentials.Password); err != nil {
				return err
			}

			response, err := gearpumpClient.Submit(ctx, jarPath, body)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Submitted %s: %s\n", filepath.Base(jarPath), response)

			return nil
		},
	}

	cmd.Flags().StringVar(&gearpumpInstance, "gearpump-instance", "", "name of the Gearpump service instance (required)")
	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "project directory containing manifest.yml and target/")
	cmd.Flags().StringVar(&jarPath, "jar", "", "application jar (default: target/*-with-dependencies.jar)")
	cmd.Flags().StringArrayVar(&instances, "instance", nil, "service instance to include in the payload (repeatable)")
	cmd.Flags().StringArrayVar(&argPairs, "arg", nil, "application argument as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("gearpump-instance")

	return cmd
}

// findJar locates the assembled application jar under the project's
// target directory.
func findJar(projectDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(projectDir, "target", "*-with-dependencies.jar"))
	if err != nil {
		return "", fmt.Errorf("scanning for application jar: %w", err)
	}

	if len(matches) == 0 {
		return "", tap.ErrJarNotFound
	}

	return matches[0], nil
}

// manifest is the subset of a cf application manifest read for defaults.
type manifest struct {
	Applications []struct {
		Name string `yaml:"name"`
	} `yaml:"applications"`
}

// manifestAppName reads the first application name from a manifest file.
func manifestAppName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parsing manifest: %w", err)
	}

	if len(m.Applications) == 0 || strings.TrimSpace(m.Applications[0].Name) == "" {
		return "", tap.ErrManifestAppNameMissing
	}

	return strings.TrimSpace(m.Applications[0].Name), nil
}
