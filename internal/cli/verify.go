package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	bshttp "github.com/vakoc/buildstamp/pkg/http"
	"github.com/vakoc/buildstamp/pkg/inspect"
	"github.com/vakoc/buildstamp/pkg/stamperrors"
	"github.com/vakoc/buildstamp/pkg/verify"
)

const verifyExample = `  buildstamp verify <artifact>... [flags]

  # Require a released version range
  buildstamp verify ./dist/myapp --constraint ">= 1.2.0, < 2.0.0"

  # Require the expected module and a clean tagged build
  buildstamp verify ./dist/*.tar.gz --module github.com/acme/myapp --require_vcs --forbid_dirty

  # Pin the commit a release was cut from
  buildstamp verify ./dist/myapp --revision abc1234
`

var ErrVerifyFailed = errors.New("verify failed")

type verifyDoc struct {
	Report *inspect.Report `json:"report,omitempty"`
	Target string          `json:"target"`
	Error  string          `json:"error,omitempty"`
	Passed bool            `json:"passed"`
}

// NewVerifyCmd returns the verify command.
func NewVerifyCmd() *cobra.Command {
	var (
		policy  verify.Policy
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "verify <artifact>...",
		Short:   "Verify compiled artifacts against a build policy",
		Example: verifyExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			client := bshttp.NewClient(timeout)

			results, err := verify.All(cc.Context(), client, policy, args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
			}

			if err := writeResults(cc.OutOrStdout(), output, results); err != nil {
				return err
			}

			if failed := verify.Failed(results); failed > 0 {
				slog.Warn("artifacts failed verification", "failed", failed, "total", len(results))

				return fmt.Errorf("%w: %d of %d artifacts", ErrVerifyFailed, failed, len(results))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&policy.ModulePath, "module", "", "Require an exact main module path")
	cmd.Flags().StringVar(&policy.Constraint, "constraint", "", "Require the version to satisfy a semver range")
	cmd.Flags().StringVar(&policy.Revision, "revision", "", "Require a full or prefix VCS revision")
	cmd.Flags().StringVar(&policy.MinGo, "min_go", "", "Require a minimum Go toolchain version")
	cmd.Flags().BoolVar(&policy.RequireVCS, "require_vcs", false, "Require a recorded VCS revision")
	cmd.Flags().BoolVar(&policy.ForbidDirty, "forbid_dirty", false, "Reject builds with uncommitted changes")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for fetching remote artifacts")

	return cmd
}

func writeResults(w io.Writer, format string, results []verify.Result) error {
	switch strings.ToLower(format) {
	case outputText, "":
		writeResultTable(w, results)

		return nil
	case outputJSON, outputYAML:
		docs := make([]verifyDoc, 0, len(results))
		for _, r := range results {
			doc := verifyDoc{
				Target: r.Target,
				Report: r.Report,
				Passed: r.Passed(),
			}
			if r.Err != nil {
				doc.Error = r.Err.Error()
			}

			docs = append(docs, doc)
		}

		return writeDoc(w, format, docs)
	}

	return fmt.Errorf("%w: %q", stamperrors.ErrInvalidFormat, format)
}

func writeResultTable(w io.Writer, results []verify.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Result", "Detail"})

	for _, r := range results {
		status := text.FgGreen.Sprint("PASS")
		detail := ""

		if r.Err != nil {
			status = text.FgRed.Sprint("FAIL")
			detail = resultDetail(r.Err)
		}

		t.AppendRow(table.Row{r.Target, status, detail})
	}

	t.Render()
}

// resultDetail flattens a multierror into a single line per violation.
func resultDetail(err error) string {
	msg := err.Error()
	lines := make([]string, 0, 4)

	for _, line := range strings.Split(msg, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line == "" || strings.HasSuffix(line, "occurred:") {
			continue
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "; ")
}
