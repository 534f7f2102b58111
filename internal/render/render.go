// Package render turns application state into a full-screen frame.
//
// Frame is a pure function of its inputs: it does not keep state between
// calls and always returns exactly width x height cells, so redrawing after
// every event never leaves stale content on screen.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/gauge/internal/state"
)

// Mode selects which iteration of the screen is drawn.
type Mode int

const (
	// ModeGauge draws the title, the bordered gauge and the key hints.
	ModeGauge Mode = iota
	// ModeHello draws only the title and the quit hint.
	ModeHello
)

// Fallback size used before the terminal reports its dimensions.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Options configures a Renderer.
type Options struct {
	Mode Mode

	// Title is shown in the header region.
	Title string

	// Label prefixes the percentage inside the gauge ("Process 1: 42%").
	Label string

	// PrimaryColor and AlternateColor are lipgloss colour strings
	// ("10", "#00ff00", ...).
	PrimaryColor   string
	AlternateColor string

	// Quit and Toggle are shown in the instruction line.
	Quit   key.Binding
	Toggle key.Binding
}

// Renderer holds the styles derived from Options.
type Renderer struct {
	opts Options

	titleStyle  lipgloss.Style
	boxStyle    lipgloss.Style
	boxTitle    lipgloss.Style
	borderStyle lipgloss.Style
	labelStyle  lipgloss.Style
	help        help.Model

	primaryBar   progress.Model
	alternateBar progress.Model
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = "Hello, World!"
	}
	if opts.Label == "" {
		opts.Label = "Process 1"
	}
	if opts.PrimaryColor == "" {
		opts.PrimaryColor = "10"
	}
	if opts.AlternateColor == "" {
		opts.AlternateColor = "11"
	}
	if len(opts.Quit.Keys()) == 0 {
		opts.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("<Q>", "quit"))
	}
	if len(opts.Toggle.Keys()) == 0 {
		opts.Toggle = key.NewBinding(key.WithKeys("c"), key.WithHelp("<C>", "change colour"))
	}

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	return &Renderer{
		opts: opts,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("245")),

		boxTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		borderStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		help: h,

		primaryBar: progress.New(
			progress.WithSolidFill(opts.PrimaryColor),
			progress.WithoutPercentage(),
		),
		alternateBar: progress.New(
			progress.WithSolidFill(opts.AlternateColor),
			progress.WithoutPercentage(),
		),
	}
}

// Frame renders s into a width x height string. Non-positive dimensions
// fall back to DefaultWidth and DefaultHeight.
func (r *Renderer) Frame(s state.State, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	// Header takes the top fifth, at least one line.
	headerHeight := height / 5
	if headerHeight < 1 {
		headerHeight = 1
	}
	header := lipgloss.PlaceVertical(headerHeight, lipgloss.Top,
		r.titleStyle.Render(truncate(r.opts.Title, width)))

	var body string
	switch r.opts.Mode {
	case ModeHello:
		body = r.helpLine(width, r.opts.Quit)
	default:
		body = r.gauge(s, width)
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, header, body)
	return fit(frame, width, height)
}

// gauge renders the thick-bordered gauge. The block title sits in the top
// border and the key hints in the bottom border.
func (r *Renderer) gauge(s state.State, width int) string {
	// Border takes one column on each side.
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	bar := r.primaryBar
	if s.Accent == state.Alternate {
		bar = r.alternateBar
	}
	bar.Width = inner

	content := lipgloss.JoinVertical(lipgloss.Left,
		bar.ViewAs(s.Progress),
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, r.labelStyle.Render(truncate(Label(r.opts.Label, s.Progress), inner))),
	)
	body := r.boxStyle.BorderTop(false).BorderBottom(false).Width(inner).Render(content)

	b := lipgloss.ThickBorder()
	top := r.borderLine(inner, r.boxTitle.Render(" Background Processes "), lipgloss.Left, b.TopLeft, b.Top, b.TopRight)
	bottom := r.borderLine(inner, r.hints(inner, r.opts.Toggle, r.opts.Quit), lipgloss.Center, b.BottomLeft, b.Bottom, b.BottomRight)

	return lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
}

// borderLine draws a horizontal border of inner cells between two corners
// with text embedded at pos.
func (r *Renderer) borderLine(inner int, text string, pos lipgloss.Position, left, fill, right string) string {
	text = truncate(text, inner)
	rest := inner - lipgloss.Width(text)
	before := 0
	if pos == lipgloss.Center {
		before = rest / 2
	}
	return r.borderStyle.Render(left+strings.Repeat(fill, before)) +
		text +
		r.borderStyle.Render(strings.Repeat(fill, rest-before)+right)
}

// hints renders the key help padded with one space on each side.
func (r *Renderer) hints(width int, bindings ...key.Binding) string {
	h := r.help
	h.Width = max(width-2, 1)
	view := h.View(keyHints(bindings))
	if view == "" {
		return ""
	}
	return " " + view + " "
}

func (r *Renderer) helpLine(width int, bindings ...key.Binding) string {
	h := r.help
	h.Width = width
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, h.View(keyHints(bindings)))
}

// keyHints adapts a list of bindings to help.KeyMap.
type keyHints []key.Binding

func (k keyHints) ShortHelp() []key.Binding {
	return k
}

func (k keyHints) FullHelp() [][]key.Binding {
	return [][]key.Binding{k}
}

// Label formats the gauge label, e.g. "Process 1: 42%".
func Label(name string, ratio float64) string {
	pct := int(math.Round(state.Clamp(ratio) * 100))
	return fmt.Sprintf("%s: %d%%", name, pct)
}

// fit pads or crops s to exactly width x height.
func fit(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate(line, width)
		}
		lines[i] = line + strings.Repeat(" ", max(0, width-lipgloss.Width(line)))
	}
	blank := strings.Repeat(" ", width)
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
