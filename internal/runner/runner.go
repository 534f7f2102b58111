// Package runner wires the event queue, the producers, the render loop and
// the terminal program together and owns their lifetimes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/ShayCichocki/gauge/internal/config"
	"github.com/ShayCichocki/gauge/internal/debuglog"
	"github.com/ShayCichocki/gauge/internal/event"
	"github.com/ShayCichocki/gauge/internal/loop"
	"github.com/ShayCichocki/gauge/internal/render"
	"github.com/ShayCichocki/gauge/internal/source"
	"github.com/ShayCichocki/gauge/internal/state"
	"github.com/ShayCichocki/gauge/internal/tui"
)

// Mode selects which screen is run.
type Mode int

const (
	// ModeLive drives the gauge from a progress source.
	ModeLive Mode = iota
	// ModeStatic shows a gauge fixed at StaticProgress.
	ModeStatic
	// ModeHello shows the title screen only.
	ModeHello
)

// StaticProgress is the value shown by ModeStatic.
const StaticProgress = 0.5

// Producer pushes events until its context is done.
type Producer interface {
	Run(ctx context.Context, out source.Pusher) error
}

// Options configures a session.
type Options struct {
	Mode   Mode
	Config *config.Config
	Logger *debuglog.Logger

	// Width and Height are drawn until the terminal reports its size.
	Width  int
	Height int

	// Input is the terminal input. Default: os.Stdin
	Input io.Reader

	// ProgramOptions are appended to the program's defaults (alt screen).
	ProgramOptions []tea.ProgramOption
}

// Run shows the UI until the user quits or something fails, and returns the
// final state. Every producer has stopped and the terminal has been restored
// by the time Run returns.
func Run(ctx context.Context, opts Options) (state.State, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return state.State{}, fmt.Errorf("invalid config: %w", err)
	}

	producers, err := buildProducers(opts.Mode, cfg, opts.Logger)
	if err != nil {
		return state.State{}, err
	}

	keys := state.Keys{Quit: cfg.Keys.Quit, Toggle: cfg.Keys.Toggle}
	initial := state.New(0)
	if opts.Mode == ModeStatic {
		initial = state.New(StaticProgress)
	}

	km := tui.NewKeyMap(keys)
	renderMode := render.ModeGauge
	if opts.Mode == ModeHello {
		renderMode = render.ModeHello
	}
	r := render.New(render.Options{
		Mode:           renderMode,
		Title:          cfg.UI.Title,
		Label:          cfg.UI.Label,
		PrimaryColor:   cfg.Theme.Primary,
		AlternateColor: cfg.Theme.Alternate,
		Quit:           km.Quit,
		Toggle:         km.Toggle,
	})

	ctx, cancelCause := context.WithCancelCause(ctx)
	cancel := func() { cancelCause(nil) }
	defer cancel()

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}
	// Once input is gone no key can ever quit, so end the session.
	input = tui.WatchInput(input, func(err error) {
		opts.Logger.Log("[runner] %v", err)
		cancelCause(err)
	})

	q := event.NewQueue()
	app := tui.NewGaugeApp(r, q, initial, opts.Width, opts.Height)
	program := tui.NewGaugeProgram(app, append([]tea.ProgramOption{tea.WithInput(input)}, opts.ProgramOptions...)...)

	g, gctx := errgroup.WithContext(ctx)

	// The program goroutine reads terminal input (the input source) and
	// draws. Whatever makes it return, everything else must stop too.
	g.Go(func() error {
		_, err := program.Run()
		cancel()
		if err != nil {
			opts.Logger.Log("[runner] program exited: %v", err)
			return fmt.Errorf("terminal: %w", err)
		}
		return nil
	})

	for _, p := range producers {
		p := p
		g.Go(func() error {
			return p.Run(gctx, q)
		})
	}

	final := initial
	g.Go(func() error {
		defer program.Quit()
		defer cancel()
		defer q.Close()

		s, err := loop.Run(gctx, initial, loop.Options{
			Queue:    q,
			Keys:     keys,
			Renderer: tui.LoopRenderer(gctx, program),
			Logger:   opts.Logger,
		})
		final = s
		if errors.Is(err, context.Canceled) {
			// Someone else stopped the session; their error is the one
			// that matters.
			return nil
		}
		return err
	})

	err = g.Wait()
	if cause := context.Cause(ctx); err == nil && !final.ShouldExit && errors.Is(cause, tui.ErrInputClosed) {
		err = cause
	}
	opts.Logger.Log("[runner] finished: exit=%t progress=%.3f accent=%s err=%v",
		final.ShouldExit, final.Progress, final.Accent, err)
	return final, err
}

func buildProducers(mode Mode, cfg *config.Config, logger *debuglog.Logger) ([]Producer, error) {
	if mode != ModeLive {
		return nil, nil
	}

	if cfg.Progress.File != "" {
		f, err := source.NewFile(cfg.Progress.File, logger)
		if err != nil {
			return nil, err
		}
		return []Producer{f}, nil
	}

	t, err := source.NewTicker(source.TickerOptions{
		Interval: cfg.Progress.Interval,
		Step:     cfg.Progress.Step,
	})
	if err != nil {
		return nil, err
	}
	return []Producer{t}, nil
}
