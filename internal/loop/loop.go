// Package loop runs the single consumer that drains the event queue,
// applies each event to the state and redraws.
package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/ShayCichocki/gauge/internal/debuglog"
	"github.com/ShayCichocki/gauge/internal/event"
	"github.com/ShayCichocki/gauge/internal/state"
)

// Renderer draws a complete frame for the given state.
type Renderer interface {
	Render(state.State) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(state.State) error

// Render calls f(s).
func (f RendererFunc) Render(s state.State) error {
	return f(s)
}

// Options configures a loop run.
type Options struct {
	Queue    *event.Queue
	Keys     state.Keys
	Renderer Renderer
	Logger   *debuglog.Logger
}

// Run draws the initial state, then pops one event at a time, applies it and
// redraws, until the state asks to exit.
//
// The event that sets ShouldExit is not drawn: the caller tears the screen
// down instead. Run returns the final state together with:
//   - nil after a clean exit,
//   - the render error, wrapped, if a draw fails,
//   - ctx.Err() if ctx is cancelled first,
//   - event.ErrClosed if the queue closes before an exit was requested.
func Run(ctx context.Context, initial state.State, opts Options) (state.State, error) {
	if opts.Queue == nil {
		return initial, errors.New("loop: nil queue")
	}
	if opts.Renderer == nil {
		return initial, errors.New("loop: nil renderer")
	}

	s := initial
	if err := opts.Renderer.Render(s); err != nil {
		return s, fmt.Errorf("draw initial frame: %w", err)
	}

	for !s.ShouldExit {
		ev, err := opts.Queue.Pop(ctx)
		if err != nil {
			return s, err
		}

		prev := s
		s = state.Apply(s, ev, opts.Keys)
		logTransition(opts.Logger, prev, s, ev)

		if s.ShouldExit {
			break
		}
		if err := opts.Renderer.Render(s); err != nil {
			return s, fmt.Errorf("draw frame: %w", err)
		}
	}

	return s, nil
}

func logTransition(l *debuglog.Logger, prev, next state.State, ev event.Event) {
	switch {
	case next.ShouldExit && !prev.ShouldExit:
		l.Log("[loop] %v: exit requested", ev)
	case next.Accent != prev.Accent:
		l.Log("[loop] %v: accent %s -> %s", ev, prev.Accent, next.Accent)
	case next.Progress != prev.Progress:
		l.Log("[loop] %v: progress %.3f -> %.3f", ev, prev.Progress, next.Progress)
	}
}
