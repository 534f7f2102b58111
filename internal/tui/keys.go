package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ShayCichocki/gauge/internal/state"
)

// KeyMap holds the bindings shown in the instruction line.
type KeyMap struct {
	Quit   key.Binding
	Toggle key.Binding
}

// NewKeyMap builds help bindings from the keys the state machine acts on.
// The first key of each list is the one advertised.
func NewKeyMap(keys state.Keys) KeyMap {
	return KeyMap{
		Quit:   binding(keys.Quit, "quit"),
		Toggle: binding(keys.Toggle, "change colour"),
	}
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp("<"+strings.ToUpper(keys[0])+">", desc),
	)
}
