// Package event defines the messages that flow from producers to the render
// loop and the queue that carries them.
//
// An Event is a closed set: Input for key presses and releases coming from
// the terminal, Progress for snapshots coming from a progress source. The
// unexported marker method keeps other packages from adding variants, so a
// type switch over Input and Progress is exhaustive.
package event

import "fmt"

// Event is a single message on the queue.
type Event interface {
	isEvent()
}

// KeyKind distinguishes key presses from releases.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRelease
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRelease:
		return "release"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// Input is a decoded terminal key event. Key uses the bubbletea key
// notation ("q", "c", "ctrl+c", "enter", ...).
type Input struct {
	Key  string
	Kind KeyKind
}

// Progress carries a progress snapshot. Value is nominally in [0, 1]; the
// state machine clamps whatever arrives.
type Progress struct {
	Value float64
}

func (Input) isEvent()    {}
func (Progress) isEvent() {}

// Press is shorthand for a key press event.
func Press(key string) Input {
	return Input{Key: key, Kind: KeyPress}
}

// String implements fmt.Stringer for debug logging.
func (i Input) String() string {
	return fmt.Sprintf("input(%s %s)", i.Key, i.Kind)
}

// String implements fmt.Stringer for debug logging.
func (p Progress) String() string {
	return fmt.Sprintf("progress(%.3f)", p.Value)
}
