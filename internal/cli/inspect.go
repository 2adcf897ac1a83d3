package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	bshttp "github.com/vakoc/buildstamp/pkg/http"
	"github.com/vakoc/buildstamp/pkg/inspect"
)

const inspectExample = `  buildstamp inspect <artifact>...

  # Report on a compiled binary
  buildstamp inspect ./dist/myapp

  # Report on a gzipped release archive
  buildstamp inspect ./dist/myapp_linux_amd64.tar.gz

  # Report on a remote artifact
  buildstamp inspect https://example.com/releases/myapp.gz

  # Report on the buildstamp binary itself
  buildstamp inspect self
`

var ErrInspectFailed = errors.New("inspect failed")

// NewInspectCmd returns the inspect command.
func NewInspectCmd() *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "inspect <artifact>...",
		Short:   "Report the build identity of compiled artifacts",
		Example: inspectExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			client := bshttp.NewClient(timeout)
			reports := make([]*inspect.Report, 0, len(args))

			var merr *multierror.Error

			for _, target := range args {
				rep, err := inspectTarget(cc, client, target)
				if err != nil {
					merr = multierror.Append(merr, err)

					continue
				}

				slog.Debug("inspected artifact", "target", target, "module", rep.MainPath)
				reports = append(reports, rep)
			}

			if err := merr.ErrorOrNil(); err != nil {
				return fmt.Errorf("%w: %w", ErrInspectFailed, err)
			}

			return writeReports(cc.OutOrStdout(), output, reports)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for fetching remote artifacts")

	return cmd
}

func inspectTarget(cc *cobra.Command, client *bshttp.Client, target string) (*inspect.Report, error) {
	if target == "self" {
		return inspect.Self()
	}

	return inspect.Any(cc.Context(), client, target)
}
