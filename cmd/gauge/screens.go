package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/gauge/internal/runner"
)

var staticCmd = &cobra.Command{
	Use:   "static",
	Short: "Show a gauge fixed at 50%",
	Long: `Show a gauge fixed at 50% with no background source.

Press c to change the gauge colour and q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, runner.ModeStatic)
	},
}

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Show the hello screen",
	Long:  `Show the title screen only. Press q to quit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, runner.ModeHello)
	},
}
