package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/vakoc/buildstamp/pkg/inspect"
	"github.com/vakoc/buildstamp/pkg/stamperrors"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"

	shortRevisionLen = 7
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

func styledKey(k string) string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return keyStyle.Render(k)
	}

	return k
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v any) error {
	b, err := sigsyaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func writeDoc(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case outputJSON:
		return writeJSON(w, v)
	case outputYAML:
		return writeYAML(w, v)
	}

	return fmt.Errorf("%w: %q", stamperrors.ErrInvalidFormat, format)
}

func writeReports(w io.Writer, format string, reports []*inspect.Report) error {
	switch strings.ToLower(format) {
	case outputText, "":
		if len(reports) == 1 {
			return writeReportText(w, reports[0])
		}

		writeReportTable(w, reports)

		return nil
	case outputJSON, outputYAML:
		if len(reports) == 1 {
			return writeDoc(w, format, reports[0])
		}

		return writeDoc(w, format, reports)
	}

	return fmt.Errorf("%w: %q", stamperrors.ErrInvalidFormat, format)
}

func writeReportText(w io.Writer, r *inspect.Report) error {
	lines := []struct {
		key   string
		value string
	}{
		{"Target", r.Target},
		{"Module", r.MainPath},
		{"Version", r.MainVersion},
		{"Go", r.GoVersion},
		{"Revision", r.Revision},
		{"Revision time", r.RevisionTime},
		{"Dirty", fmt.Sprintf("%t", r.Dirty)},
		{"Dependencies", fmt.Sprintf("%d", r.Deps)},
	}

	if r.Stamp != nil {
		lines = append(lines, struct {
			key   string
			value string
		}{"Stamped version", r.Stamp.String()})
	}

	for _, l := range lines {
		if l.value == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s %s\n", styledKey(fmt.Sprintf("%-14s", l.key+":")), l.value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}

func writeReportTable(w io.Writer, reports []*inspect.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Module", "Version", "Go", "Revision", "Dirty"})

	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Target, r.MainPath, r.MainVersion, r.GoVersion, shortRevision(r.Revision), r.Dirty,
		})
	}

	t.Render()
}

func shortRevision(rev string) string {
	if len(rev) > shortRevisionLen {
		return rev[:shortRevisionLen]
	}

	return rev
}
