package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/elcap-firsts/internal/chart"
	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
	}
}

// WriteOutput writes v as JSON or YAML, or calls text for the text format
func WriteOutput(w io.Writer, v any, format OutputFormat, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	case FormatText:
		return text(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeYAML outputs v as YAML
func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// reportText controls the human-readable report
type reportText struct {
	chart   config.ChartConfig
	verbose bool
	order   SortOrder
}

func writeReport(w io.Writer, report *pipeline.Report, format OutputFormat, opts reportText) error {
	return WriteOutput(w, report, format, func(w io.Writer) error {
		return writeReportText(w, report, opts)
	})
}

// writeReportText outputs the leaderboard and the routes needing attention
func writeReportText(w io.Writer, report *pipeline.Report, opts reportText) error {
	area := report.Area
	if area == "" {
		area = "All routes"
	}
	fmt.Fprintf(w, "%s: %d routes, %d first ascent credits, %d climbers\n\n",
		area, len(report.Routes), report.Credits(), len(report.Leaderboard))

	if err := chart.WriteText(w, chartEntries(report, opts.chart), opts.chart.TextWidth); err != nil {
		return err
	}

	if n := report.OverrideCount(); n > 0 {
		fmt.Fprintf(w, "\nOverrides applied: %d\n", n)
	}

	if len(report.NeedsReview) > 0 {
		fmt.Fprintf(w, "\nNeeds review (%d):\n", len(report.NeedsReview))
		for _, index := range report.NeedsReview {
			if index < 0 || index >= len(report.Routes) {
				continue
			}
			r := report.Routes[index]
			fmt.Fprintf(w, "  [%d] %s: %q -> %s (%s)\n", r.Index, r.Route, r.Raw, strings.Join(r.Cleaned, ", "), r.Confidence)
		}
	}

	if len(report.UnusedOverrides) > 0 {
		unused := make([]string, len(report.UnusedOverrides))
		for i, index := range report.UnusedOverrides {
			unused[i] = fmt.Sprint(index)
		}
		fmt.Fprintf(w, "\nUnused override indexes: %s\n", strings.Join(unused, ", "))
	}

	if opts.verbose {
		fmt.Fprintln(w, "\nRoutes:")
		for _, r := range sortRoutes(report.Routes, opts.order) {
			marker := ""
			if r.Overridden {
				marker = " [override]"
			}
			fmt.Fprintf(w, "  [%d] %s: %s (%s)%s\n", r.Index, r.Route, strings.Join(r.Names, ", "), r.Confidence, marker)
		}
	}

	return nil
}
