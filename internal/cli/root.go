package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/pfrederiksen/elcap-firsts/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is reported by the version command; main overrides it.
var Version = "dev"

// flagKeys maps command flags to the config keys they override
var flagKeys = map[string]string{
	"format":            "output.format",
	"area":              "mountain_project.area",
	"lat":               "mountain_project.lat",
	"lon":               "mountain_project.lon",
	"max-distance":      "mountain_project.max_distance",
	"max-results":       "mountain_project.max_results",
	"delay":             "scraper.delay",
	"respect-robots":    "scraper.respect_robots",
	"overrides":         "overrides.file",
	"builtin-overrides": "overrides.builtin",
	"output-dir":        "output.dir",
	"top":               "chart.top",
	"min":               "chart.min",
	"width":             "chart.width",
	"font":              "chart.font",
}

// app holds state shared by all subcommands of one invocation
type app struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
	cfg     config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "elcap-firsts",
		Short: "Rank climbers by first ascents on El Capitan",
		Long: `elcap-firsts lists the routes of a climbing area from the Mountain Project
data API, reads the first ascent (FA) entry of every route page, extracts the
climbers' names and ranks them by number of first ascents.

Name extraction is heuristic. Routes whose names could not be extracted
confidently are listed for review, and a manual override table corrects them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.elcap-firsts/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and per-route output")
	cmd.PersistentFlags().String("format", "text", "output format: text, json or yaml")

	cmd.AddCommand(
		a.newRunCmd(),
		a.newExtractCmd(),
		a.newChartCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// setup loads .env, resolves the configuration and installs the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	a.v = config.NewViper(a.cfgFile)
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Read(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logger.LevelDebug
	if !a.verbose {
		if level, err = logger.ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", logger.Fields{"path": used})
	}
	return nil
}

// bindFlags binds every known flag present on the command to its config key
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func (a *app) format() (OutputFormat, error) {
	return ParseFormat(a.cfg.Output.Format)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "elcap-firsts %s\n", Version)
			return err
		},
	}
}
