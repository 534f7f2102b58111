// Package state holds the application state and the transition function
// the render loop applies to every event.
package state

import (
	"fmt"
	"math"

	"github.com/ShayCichocki/gauge/internal/event"
)

// Accent selects the gauge colour.
type Accent int

const (
	Primary Accent = iota
	Alternate
)

// String returns the accent name.
func (a Accent) String() string {
	switch a {
	case Primary:
		return "primary"
	case Alternate:
		return "alternate"
	default:
		return fmt.Sprintf("Accent(%d)", int(a))
	}
}

// Toggle returns the other accent.
func (a Accent) Toggle() Accent {
	if a == Primary {
		return Alternate
	}
	return Primary
}

// State is the whole UI state. It is passed by value into Apply and the
// updated copy is handed back to the caller.
type State struct {
	ShouldExit bool
	Accent     Accent
	Progress   float64 // always within [0, 1]
}

// New returns the initial state with progress set to the clamped start
// value.
func New(start float64) State {
	return State{Progress: Clamp(start)}
}

// Keys lists which key codes quit and which toggle the accent.
type Keys struct {
	Quit   []string
	Toggle []string
}

// DefaultKeys returns q / ctrl+c to quit and c to toggle.
func DefaultKeys() Keys {
	return Keys{
		Quit:   []string{"q", "ctrl+c"},
		Toggle: []string{"c"},
	}
}

// Apply returns the state that results from consuming ev.
//
// Only key presses act; releases and unbound keys leave the state as is.
// Progress values are clamped into [0, 1] and NaN is ignored. Once
// ShouldExit is set nothing clears it.
func Apply(s State, ev event.Event, keys Keys) State {
	switch ev := ev.(type) {
	case event.Input:
		if ev.Kind != event.KeyPress {
			return s
		}
		switch {
		case contains(keys.Quit, ev.Key):
			s.ShouldExit = true
		case contains(keys.Toggle, ev.Key):
			s.Accent = s.Accent.Toggle()
		}
	case event.Progress:
		if math.IsNaN(ev.Value) {
			return s
		}
		s.Progress = Clamp(ev.Value)
	}
	return s
}

// Clamp limits v to [0, 1].
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
