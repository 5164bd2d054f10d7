package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// TargetInfo represents the resolved target information.
type TargetInfo struct {
	API          string `json:"api,omitempty"          yaml:"api,omitempty"`
	User         string `json:"user,omitempty"         yaml:"user,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Space        string `json:"space,omitempty"        yaml:"space,omitempty"`
	LoggedIn     bool   `json:"logged_in"              yaml:"logged_in"`
	Retargeted   bool   `json:"retargeted"             yaml:"retargeted"`
}

// NewTargetCommand creates the target command.
func NewTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "target",
		Short: "Reconcile the session with the requested API, org and space",
		Long: `Reconcile the active cf session with the requested connection
parameters. Fields not given as flags are prompted for, seeded with the
current session values; the password is never echoed and never reused
from the current session. Logging in and retargeting only happen when
the requested parameters actually differ.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTarget(cmd.Context(), cfcli.New(cfcli.ExecRunner{}), newTerminalPrompter())
		},
	}
}

func runTarget(ctx context.Context, cf *cfcli.CLI, prompter tap.Prompter) error {
	current, err := cf.Target(ctx)
	if err != nil {
		// No active session yet; resolve against an empty one.
		current = tap.ConnectionParams{}
	}

	overrides := tap.ConnectionParams{
		APIURL:   viper.GetString("api"),
		Username: viper.GetString("user"),
		Password: viper.GetString("password"),
		Org:      viper.GetString("org"),
		Space:    viper.GetString("space"),
	}

	decision := tap.Resolve(current, overrides, prompter)

	if decision.LoginRequired {
		if err := cf.Login(ctx, decision.Effective); err != nil {
			return err
		}
	} else if decision.TargetRequired {
		if err := cf.SetTarget(ctx, decision.Effective.Org, decision.Effective.Space); err != nil {
			return err
		}
	}

	if err := saveSessionConfig(SessionConfig{
		API:          decision.Effective.APIURL,
		Username:     decision.Effective.Username,
		Organization: decision.Effective.Org,
		Space:        decision.Effective.Space,
	}); err != nil {
		return err
	}

	return outputTargetInfo(TargetInfo{
		API:          decision.Effective.APIURL,
		User:         decision.Effective.Username,
		Organization: decision.Effective.Org,
		Space:        decision.Effective.Space,
		LoggedIn:     decision.LoginRequired,
		Retargeted:   decision.TargetRequired,
	})
}

func outputTargetInfo(targetInfo TargetInfo) error {
	if done, err := renderObject(targetInfo); done {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("API", targetInfo.API)
	_ = table.Append("User", targetInfo.User)
	_ = table.Append("Organization", targetInfo.Organization)
	_ = table.Append("Space", targetInfo.Space)

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	if targetInfo.LoggedIn {
		_, _ = os.Stdout.WriteString("Logged in.\n")
	} else if targetInfo.Retargeted {
		_, _ = os.Stdout.WriteString("Retargeted org and space.\n")
	}

	return nil
}
