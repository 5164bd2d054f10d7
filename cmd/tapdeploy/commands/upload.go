package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/internal/uploader"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// NewUploadCommand creates the upload command.
func NewUploadCommand() *cobra.Command {
	var (
		title    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a local file to HDFS",
		Long: `Upload a local file to HDFS through the platform's hdfs-uploader
application, under the targeted organization. Prints the resulting
object-store path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localPath := args[0]
			ctx := cmd.Context()

			cf := cfcli.New(cfcli.ExecRunner{})

			apiURL, err := effectiveAPIURL(cf)
			if err != nil {
				return err
			}

			current, err := cf.Target(ctx)
			if err != nil {
				return err
			}

			if current.Org == "" {
				return tap.ErrOrgRequired
			}

			orgGUID, err := cf.OrgGUID(ctx, current.Org)
			if err != nil {
				return err
			}

			if title == "" {
				title = filepath.Base(localPath)
			}

			opts := append(clientOptions(), internalhttp.WithTimeout(constants.UploadHTTPTimeout))

			location, err := uploader.New(apiURL, cf, opts...).Upload(ctx, orgGUID, localPath, title, category)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, location)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title stored with the file (default: file name)")
	cmd.Flags().StringVar(&category, "category", uploader.DefaultCategory, "file category")

	return cmd
}
