package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ShayCichocki/gauge/internal/config"
	"github.com/ShayCichocki/gauge/internal/debuglog"
	"github.com/ShayCichocki/gauge/internal/render"
	"github.com/ShayCichocki/gauge/internal/runner"
	"github.com/ShayCichocki/gauge/internal/state"
)

var (
	flagInterval     time.Duration
	flagStep         float64
	flagProgressFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gauge driven by a background progress source",
	Long: `Run the gauge driven by a background progress source.

By default a simulated task advances the gauge by --step every --interval.
With --progress-file the gauge instead follows a file that another process
updates with a ratio ("0.42") or a percentage ("42%").

Examples:
  gauge run                               # simulated task, 1% every 100ms
  gauge run --interval 50ms --step 0.02   # faster simulation
  gauge run --progress-file /tmp/job.progress`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func addProgressFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "Time between simulated progress ticks (default from config, 100ms)")
	cmd.Flags().Float64Var(&flagStep, "step", 0, "Progress added per tick, in (0, 1] (default from config, 0.01)")
	cmd.Flags().StringVar(&flagProgressFile, "progress-file", "", "Follow progress written to this file instead of simulating")
}

func init() {
	addProgressFlags(runCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	return runSession(cmd, runner.ModeLive)
}

// runSession loads configuration, prepares the terminal and logging, and
// runs one UI session in the given mode.
func runSession(cmd *cobra.Command, mode runner.Mode) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := checkTerminal(); err != nil {
		return err
	}

	logPath := cfg.Log.File
	if debugLogPath != "" {
		logPath = debugLogPath
	}
	logger, err := debuglog.New(logPath)
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	defer logger.Close()

	// Suppress log output while the TUI is active (it corrupts the display)
	restoreLog := debuglog.Capture(logger)
	defer restoreLog()

	width, height := terminalSize()
	logger.Log("[cmd] starting mode=%d size=%dx%d", mode, width, height)

	final, err := runner.Run(cmd.Context(), runner.Options{
		Mode:   mode,
		Config: cfg,
		Logger: logger,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return err
	}

	printSummary(mode, final)
	return nil
}

// loadConfig reads configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Progress.Interval = flagInterval
	}
	if flags.Changed("step") {
		cfg.Progress.Step = flagStep
	}
	if flags.Changed("progress-file") {
		cfg.Progress.File = flagProgressFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// checkTerminal fails early when there is no terminal to take over.
func checkTerminal() error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("gauge needs an interactive terminal: stdin and stdout must be a TTY")
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalSize returns the current size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return render.DefaultWidth, render.DefaultHeight
	}
	return width, height
}

// printSummary reports how the session ended once the screen is restored.
func printSummary(mode runner.Mode, s state.State) {
	if mode == runner.ModeHello {
		printStatus("✓", "Goodbye!", color.FgGreen)
		return
	}
	printStatus("✓", fmt.Sprintf("Quit at %s (%s gauge)", render.Label("progress", s.Progress), s.Accent), color.FgGreen)
}

// printStatus prints a colored status line.
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(color.Output, "%s %s\n", c.Sprint(symbol), message)
}
