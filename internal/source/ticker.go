// Package source contains the producers that feed progress snapshots into
// the event queue.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShayCichocki/gauge/internal/event"
	"github.com/ShayCichocki/gauge/internal/state"
)

// Pusher is the producer side of the event queue.
type Pusher interface {
	Push(event.Event) error
}

// TickerOptions configures a Ticker.
type TickerOptions struct {
	// Interval between snapshots.
	// Default: 100ms
	Interval time.Duration

	// Step added to the progress value on every tick.
	// Default: 0.01
	Step float64
}

// Ticker simulates a background task by advancing progress on a fixed
// interval.
type Ticker struct {
	opts TickerOptions
}

// NewTicker validates opts and fills in defaults for zero values.
func NewTicker(opts TickerOptions) (*Ticker, error) {
	if opts.Interval == 0 {
		opts.Interval = 100 * time.Millisecond
	}
	if opts.Step == 0 {
		opts.Step = 0.01
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("ticker interval must be positive, got %s", opts.Interval)
	}
	if opts.Step < 0 || opts.Step > 1 {
		return nil, fmt.Errorf("ticker step must be in (0, 1], got %v", opts.Step)
	}
	return &Ticker{opts: opts}, nil
}

// Run pushes one event.Progress per tick until ctx is done or the queue
// closes. Values are clamped to 1.
func (t *Ticker) Run(ctx context.Context, out Pusher) error {
	ticker := time.NewTicker(t.opts.Interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		// Multiplying instead of accumulating keeps 100 x 0.01 at exactly 1.
		value := state.Clamp(float64(n) * t.opts.Step)
		if err := out.Push(event.Progress{Value: value}); err != nil {
			if errors.Is(err, event.ErrClosed) {
				return nil
			}
			return fmt.Errorf("push progress: %w", err)
		}
	}
}
