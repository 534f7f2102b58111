package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/gauge/internal/event"
	"github.com/ShayCichocki/gauge/internal/loop"
	"github.com/ShayCichocki/gauge/internal/render"
	"github.com/ShayCichocki/gauge/internal/state"
)

// StateMsg carries a state snapshot from the render loop to the program.
type StateMsg struct {
	State state.State
}

// Pusher is the producer side of the event queue.
type Pusher interface {
	Push(event.Event) error
}

// GaugeApp is the bubbletea model. It owns no application logic: key
// presses are forwarded to the event queue and the view shows whatever
// state the render loop last sent.
type GaugeApp struct {
	renderer *render.Renderer
	events   Pusher

	state    state.State
	width    int
	height   int
	quitting bool
}

// NewGaugeApp creates the model. width and height are the size to draw
// until the terminal reports its own.
func NewGaugeApp(r *render.Renderer, events Pusher, initial state.State, width, height int) *GaugeApp {
	return &GaugeApp{
		renderer: r,
		events:   events,
		state:    initial,
		width:    width,
		height:   height,
	}
}

// Init implements tea.Model.
func (a *GaugeApp) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *GaugeApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Terminals only report presses here. If the loop has gone away
		// nobody will ever ask us to quit, so do it ourselves.
		if err := a.events.Push(event.Press(msg.String())); err != nil {
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case StateMsg:
		a.state = msg.State
	}

	return a, nil
}

// View implements tea.Model.
func (a *GaugeApp) View() string {
	if a.quitting {
		return ""
	}
	return a.renderer.Frame(a.state, a.width, a.height)
}

// State returns the last state received from the loop.
func (a *GaugeApp) State() state.State {
	return a.state
}

// NewGaugeProgram creates a full-screen program for app.
func NewGaugeProgram(app *GaugeApp, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(app, opts...)
}

// Sender is the part of *tea.Program the loop renderer needs.
type Sender interface {
	Send(tea.Msg)
}

// LoopRenderer hands every frame the loop draws to the program. It reports
// ctx.Err() once ctx is done so the loop stops drawing into a program that
// has already exited.
func LoopRenderer(ctx context.Context, p Sender) loop.Renderer {
	return loop.RendererFunc(func(s state.State) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.Send(StateMsg{State: s})
		return nil
	})
}
