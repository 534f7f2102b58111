package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	debugLogPath string
)

var rootCmd = &cobra.Command{
	Use:   "gauge",
	Short: "Terminal progress gauge driven by background events",
	Long: `gauge draws a full-screen progress gauge and keeps it updated from a
background progress source.

Key presses and progress updates are merged into one event queue and applied
one at a time; the screen is redrawn after each.

Keys (configurable):
  c        Change the gauge colour
  q        Quit

With no subcommand, runs the live gauge (same as "gauge run").`,
	SilenceUsage: true,
	RunE:         runLive,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Read configuration from this file only")
	rootCmd.PersistentFlags().StringVar(&debugLogPath, "debug-log", "", "Write debug output to this file")

	addProgressFlags(rootCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(staticCmd)
	rootCmd.AddCommand(helloCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
