package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
)

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	var (
		projectDir   string
		manifestPath string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the application described by the project manifest",
		Long: `Push the application to the targeted org and space using the
project's cf manifest. Run "tapdeploy target" first to reconcile the
session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" {
				manifestPath = filepath.Join(projectDir, "manifest.yml")
			}

			appName, err := manifestAppName(manifestPath)
			if err != nil {
				return err
			}

			cf := cfcli.New(cfcli.ExecRunner{})

			if err := cf.Push(cmd.Context(), projectDir, manifestPath); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Pushed %s\n", appName)

			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "project directory")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (default: <project-dir>/manifest.yml)")

	return cmd
}
