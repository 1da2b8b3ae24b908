package cli

import (
	"fmt"
	"path/filepath"

	"github.com/pfrederiksen/elcap-firsts/internal/chart"
	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/pfrederiksen/elcap-firsts/internal/logger"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/storage"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
	"github.com/spf13/cobra"
)

type chartCmdOptions struct {
	report string
	out    string
	text   bool
}

func (a *app) newChartCmd() *cobra.Command {
	opts := &chartCmdOptions{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the leaderboard of a saved report",
		Long: `Redraw the bar chart from a report written by "run", without fetching
anything. Use --top, --min and --width to change what is drawn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChart(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.report, "report", "", "report file (default: <output-dir>/report.json)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "PNG output path (default: <output-dir>/chart.png)")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print a text chart instead of writing a PNG")
	cmd.Flags().String("output-dir", "", "directory holding the saved report")
	cmd.Flags().Int("top", 0, "climbers shown (0 = all)")
	cmd.Flags().Int("min", 0, "minimum first ascents to be charted")
	cmd.Flags().Int("width", 0, "chart width in pixels")
	cmd.Flags().String("font", "", "TrueType font for the chart")

	return cmd
}

func (a *app) runChart(cmd *cobra.Command, opts *chartCmdOptions) error {
	dir, err := storage.ExpandHome(a.cfg.Output.Dir)
	if err != nil {
		return err
	}

	reportPath := opts.report
	if reportPath == "" {
		reportPath = filepath.Join(dir, storage.ReportFile)
	}
	report, err := storage.LoadReportFile(reportPath)
	if err != nil {
		return err
	}

	entries := chartEntries(report, a.cfg.Chart)
	if opts.text {
		return chart.WriteText(cmd.OutOrStdout(), entries, a.cfg.Chart.TextWidth)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no climbers with at least %d first ascents: %w", a.cfg.Chart.Min, chart.ErrNoData)
	}

	out := opts.out
	if out == "" {
		out = filepath.Join(dir, ChartFile)
	}
	if err := writeChartFile(out, entries, a.cfg.Chart); err != nil {
		return err
	}

	logger.Info("Wrote chart", logger.Fields{"path": out, "climbers": len(entries)})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// chartEntries selects the leaderboard entries to draw
func chartEntries(report *pipeline.Report, c config.ChartConfig) []tally.Entry {
	return tally.Top(tally.AtLeast(report.Leaderboard, c.Min), c.Top)
}
