package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/elcap-firsts/internal/chart"
	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/pfrederiksen/elcap-firsts/internal/logger"
	"github.com/pfrederiksen/elcap-firsts/internal/mountainproject"
	"github.com/pfrederiksen/elcap-firsts/internal/override"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/scraper"
	"github.com/pfrederiksen/elcap-firsts/internal/storage"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
	"github.com/spf13/cobra"
)

// ChartFile is the name of the PNG chart written next to the report
const ChartFile = "chart.png"

type runOptions struct {
	noSave    bool
	sortOrder string
}

func (a *app) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Survey an area and rank its first ascensionists",
		Long: `Fetch the area's routes, read every route page's FA entry, extract and
count the names, then write report.json, credits.parquet and chart.png to the
output directory and print the leaderboard.

Route pages are fetched one at a time, honoring robots.txt and the configured
delay. Any failed fetch aborts the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSurvey(cmd, opts)
		},
	}

	cmd.Flags().String("area", "", "area name routes must be located in (default El Capitan)")
	cmd.Flags().Float64("lat", 0, "latitude of the search center")
	cmd.Flags().Float64("lon", 0, "longitude of the search center")
	cmd.Flags().Float64("max-distance", 0, "search radius in miles")
	cmd.Flags().Int("max-results", 0, "maximum routes requested from the API")
	cmd.Flags().Duration("delay", 0, "minimum delay between page fetches")
	cmd.Flags().Bool("respect-robots", true, "honor robots.txt")
	cmd.Flags().String("overrides", "", "YAML file of manual name corrections")
	cmd.Flags().Bool("builtin-overrides", true, "apply the built-in El Capitan corrections")
	cmd.Flags().String("output-dir", "", "directory for report, parquet export and chart")
	cmd.Flags().Int("top", 0, "climbers shown in the chart (0 = all)")
	cmd.Flags().Int("min", 0, "minimum first ascents to be charted")
	cmd.Flags().Int("width", 0, "chart width in pixels")
	cmd.Flags().String("font", "", "TrueType font for the chart")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "print results without writing files")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortByIndex), "route order in verbose output: index, route or confidence")

	return cmd
}

func (a *app) runSurvey(cmd *cobra.Command, opts *runOptions) error {
	format, err := a.format()
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(opts.sortOrder)
	if err != nil {
		return err
	}

	cfg := a.cfg
	if cfg.MountainProject.APIKey == "" {
		return fmt.Errorf("%w: set %s or mountain_project.api_key", mountainproject.ErrMissingKey, config.KeyEnvName)
	}

	table, err := loadOverrides(cfg.Overrides)
	if err != nil {
		return err
	}

	source := &mountainproject.AreaSource{
		Client: mountainproject.NewClientWithBaseURL(cfg.MountainProject.APIKey, cfg.MountainProject.BaseURL),
		Query: mountainproject.Query{
			Lat:         cfg.MountainProject.Lat,
			Lon:         cfg.MountainProject.Lon,
			MaxDistance: cfg.MountainProject.MaxDistance,
			MaxResults:  cfg.MountainProject.MaxResults,
		},
		Area: cfg.MountainProject.Area,
	}
	fetcher := scraper.NewWithOptions(scraperOptions(cfg.Scraper))

	p := pipeline.New(source, fetcher, table)
	p.Area = cfg.MountainProject.Area

	report, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !opts.noSave {
		if err := saveArtifacts(report, cfg); err != nil {
			return err
		}
	}

	return writeReport(cmd.OutOrStdout(), report, format, reportText{
		chart:   cfg.Chart,
		verbose: a.verbose,
		order:   order,
	})
}

func scraperOptions(c config.ScraperConfig) scraper.Options {
	return scraper.Options{
		UserAgent:     c.UserAgent,
		Timeout:       c.Timeout,
		Delay:         c.Delay,
		RespectRobots: c.RespectRobots,
		CacheTTL:      c.CacheTTL,
		FARow:         c.FARow,
		FACol:         c.FACol,
	}
}

// loadOverrides builds the override table; a file's entries win over the built-in ones
func loadOverrides(c config.OverridesConfig) (override.Table, error) {
	table := override.New()
	if c.Builtin {
		table = override.ElCapitan()
	}
	if c.File != "" {
		path, err := storage.ExpandHome(c.File)
		if err != nil {
			return override.Table{}, err
		}
		fromFile, err := override.LoadFile(path)
		if err != nil {
			return override.Table{}, err
		}
		table = table.Merge(fromFile)
	}

	logger.Debug("Loaded overrides", logger.Fields{
		"entries": table.Len(),
		"builtin": c.Builtin,
		"file":    c.File,
	})
	return table, nil
}

func saveArtifacts(report *pipeline.Report, cfg config.Config) error {
	store, err := storage.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	reportPath, err := store.SaveReport(report)
	if err != nil {
		return err
	}
	creditsPath, err := store.ExportCredits(report)
	if err != nil {
		return err
	}

	chartPath := filepath.Join(store.Dir(), ChartFile)
	entries := chartEntries(report, cfg.Chart)
	if len(entries) > 0 {
		if err := writeChartFile(chartPath, entries, cfg.Chart); err != nil {
			return err
		}
	} else {
		chartPath = ""
	}

	logger.Info("Saved artifacts", logger.Fields{
		"report":  reportPath,
		"credits": creditsPath,
		"chart":   chartPath,
	})
	return nil
}

func writeChartFile(path string, entries []tally.Entry, c config.ChartConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := chart.RenderPNG(f, entries, chartOptions(c)); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func chartOptions(c config.ChartConfig) chart.Options {
	opts := chart.DefaultOptions()
	opts.Width = c.Width
	opts.Title = c.Title
	opts.FontPath = c.Font
	opts.FontSize = c.FontSize
	return opts
}
