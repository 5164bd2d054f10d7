package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Inspect provisioned service instances",
		Long:  "List service instances in the targeted space and inspect their identifiers and credentials",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGUIDCommand())
	cmd.AddCommand(newServicesCredentialsCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List service instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			tapClient, err := newPlatformClient()
			if err != nil {
				return err
			}

			instances, err := tapClient.ServiceInstances().List(cmd.Context())
			if err != nil {
				return err
			}

			return outputInstanceList(instances)
		},
	}
}

func newServicesGUIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guid INSTANCE_NAME",
		Short: "Resolve a service instance name to its GUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return tap.ErrInstanceNameRequired
			}

			tapClient, err := newPlatformClient()
			if err != nil {
				return err
			}

			guid, err := tapClient.ServiceInstances().GetGUIDByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, guid)

			return nil
		},
	}
}

func newServicesCredentialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials INSTANCE_NAME",
		Short: "Show a service instance's credentials",
		Long: `Show the credentials of a service instance by creating a short-lived
service key, reading its credentials and deleting the key again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return tap.ErrInstanceNameRequired
			}

			tapClient, err := newPlatformClient()
			if err != nil {
				return err
			}

			credentials, err := tapClient.PeekCredentials(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var pretty map[string]interface{}
			if err := json.Unmarshal(credentials, &pretty); err != nil {
				return fmt.Errorf("decoding credentials: %w", err)
			}

			if done, err := renderObject(pretty); done {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(pretty); err != nil {
				return fmt.Errorf("encoding credentials: %w", err)
			}

			return nil
		},
	}
}

type instanceRow struct {
	Name string   `json:"name" yaml:"name"`
	GUID string   `json:"guid" yaml:"guid"`
	Tags []string `json:"tags" yaml:"tags"`
}

func outputInstanceList(instances *tap.ListResponse[tap.ServiceInstance]) error {
	rows := make([]instanceRow, 0, len(instances.Resources))
	for _, instance := range instances.Resources {
		rows = append(rows, instanceRow{
			Name: instance.Entity.Name,
			GUID: instance.Metadata.GUID,
			Tags: instance.Entity.Tags,
		})
	}

	if done, err := renderObject(rows); done {
		return err
	}

	if len(rows) == 0 {
		_, _ = os.Stdout.WriteString("No service instances found.\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "GUID", "Tags")

	for _, row := range rows {
		_ = table.Append(row.Name, row.GUID, strings.Join(row.Tags, ", "))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}
