package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/gauge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration gauge would run with, as YAML.

Configuration is read from ~/.config/gauge/config.yaml, then .gauge.yaml in
the current directory or a parent, then GAUGE_* environment variables
(for example GAUGE_PROGRESS_INTERVAL=50ms). --config reads a single file
instead of the first two.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		out, err := cfg.YAML()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# user config:    %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# project config: %s\n", project)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "# invalid: %v\n", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}
