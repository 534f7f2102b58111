package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/gauge/internal/event"
	"github.com/ShayCichocki/gauge/internal/render"
	"github.com/ShayCichocki/gauge/internal/state"
)

func newTestApp(q *event.Queue) *GaugeApp {
	r := render.New(render.Options{})
	return NewGaugeApp(r, q, state.New(0), 80, 24)
}

func TestGaugeApp_Init(t *testing.T) {
	app := newTestApp(event.NewQueue())
	if cmd := app.Init(); cmd != nil {
		t.Error("Init should not return a command")
	}
}

func TestGaugeApp_Update_ForwardsKeys(t *testing.T) {
	q := event.NewQueue()
	app := newTestApp(q)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'c'}},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	}
	for _, k := range keys {
		model, cmd := app.Update(k)
		if cmd != nil {
			t.Errorf("key %q returned a command", k.String())
		}
		if model.(*GaugeApp).quitting {
			t.Errorf("key %q should not quit the program directly", k.String())
		}
	}

	want := []event.Event{event.Press("c"), event.Press("q"), event.Press("ctrl+c")}
	for i, w := range want {
		ev, err := q.Pop(context.Background())
		if err != nil {
			t.Fatalf("Pop %d failed: %v", i, err)
		}
		if ev != w {
			t.Errorf("event %d = %v, want %v", i, ev, w)
		}
	}
}

func TestGaugeApp_Update_ClosedQueueQuits(t *testing.T) {
	q := event.NewQueue()
	q.Close()
	app := newTestApp(q)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command should produce tea.QuitMsg")
	}
	if !model.(*GaugeApp).quitting {
		t.Error("quitting should be true")
	}
	if app.View() != "" {
		t.Error("View should be empty once quitting")
	}
}

func TestGaugeApp_Update_WindowSize(t *testing.T) {
	app := newTestApp(event.NewQueue())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	updated := model.(*GaugeApp)
	if updated.width != 120 {
		t.Errorf("width = %d, want 120", updated.width)
	}
	if updated.height != 40 {
		t.Errorf("height = %d, want 40", updated.height)
	}
	if lines := strings.Count(updated.View(), "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
}

func TestGaugeApp_Update_StateMsg(t *testing.T) {
	app := newTestApp(event.NewQueue())

	want := state.State{Progress: 0.42, Accent: state.Alternate}
	app.Update(StateMsg{State: want})

	if app.State() != want {
		t.Errorf("State() = %+v, want %+v", app.State(), want)
	}
	if !strings.Contains(app.View(), "Process 1: 42%") {
		t.Errorf("view does not show new progress:\n%s", app.View())
	}
}

type fakeSender struct {
	msgs []tea.Msg
}

func (f *fakeSender) Send(msg tea.Msg) {
	f.msgs = append(f.msgs, msg)
}

func TestLoopRenderer(t *testing.T) {
	sender := &fakeSender{}
	ctx, cancel := context.WithCancel(context.Background())

	r := LoopRenderer(ctx, sender)
	s := state.State{Progress: 0.7}
	if err := r.Render(s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(sender.msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.msgs))
	}
	if msg, ok := sender.msgs[0].(StateMsg); !ok || msg.State != s {
		t.Errorf("sent %#v, want StateMsg{%+v}", sender.msgs[0], s)
	}

	cancel()
	if err := r.Render(s); !errors.Is(err, context.Canceled) {
		t.Errorf("Render after cancel = %v, want context.Canceled", err)
	}
	if len(sender.msgs) != 1 {
		t.Error("Render after cancel should not send")
	}
}

func TestNewKeyMap(t *testing.T) {
	km := NewKeyMap(state.DefaultKeys())

	if got := km.Quit.Help().Key; got != "<Q>" {
		t.Errorf("quit help key = %q, want <Q>", got)
	}
	if got := km.Toggle.Help().Key; got != "<C>" {
		t.Errorf("toggle help key = %q, want <C>", got)
	}
	if km.Quit.Help().Desc != "quit" || km.Toggle.Help().Desc != "change colour" {
		t.Errorf("unexpected help descriptions %q, %q", km.Quit.Help().Desc, km.Toggle.Help().Desc)
	}

	empty := NewKeyMap(state.Keys{})
	if empty.Quit.Enabled() || empty.Toggle.Enabled() {
		t.Error("bindings without keys should be disabled")
	}
}
