package cli

import (
	"fmt"

	"github.com/pfrederiksen/elcap-firsts/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage elcap-firsts configuration",
		Long: `Manage elcap-firsts configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (ELCAP_*, MOUNTAIN_PROJECT_KEY)
3. Config file (~/.elcap-firsts/config.yaml)
4. Defaults`,
	}

	cmd.AddCommand(a.newConfigShowCmd(), a.newConfigInitCmd())
	return cmd
}

func (a *app) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n", used)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "No configuration file found (using defaults)")
			}

			data, err := a.cfg.Redacted().Marshal()
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func (a *app) newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Long:  `Create a default configuration file at ~/.elcap-firsts/config.yaml, or at the given path.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", path)
			return nil
		},
	}
}
