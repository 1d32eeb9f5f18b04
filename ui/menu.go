package ui

import (
	"strings"

	"neoshelf/keys"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var listDescStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var menuKeyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var menuDescStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var errStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#de613e"))

// Menu is the one-line key hint bar at the bottom of the screen.
type Menu struct {
	width    int
	bindings []keys.KeyName
}

func NewMenu() *Menu {
	return &Menu{
		bindings: []keys.KeyName{
			keys.KeyLeft, keys.KeyRight, keys.KeyEnter, keys.KeySubmenu,
			keys.KeyManager, keys.KeyNextShelf, keys.KeyHelp, keys.KeyQuit,
		},
	}
}

func (m *Menu) SetSize(width, height int) {
	m.width = width
}

// SetBindings replaces the displayed hints, used when an overlay takes focus.
func (m *Menu) SetBindings(names ...keys.KeyName) {
	m.bindings = names
}

func (m *Menu) String() string {
	parts := make([]string, 0, len(m.bindings))
	for _, name := range m.bindings {
		b, ok := keys.GlobalkeyBindings[name]
		if !ok {
			continue
		}
		parts = append(parts, renderHint(b))
	}
	line := strings.Join(parts, menuDescStyle.Render("  "))
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}
	return line
}

func renderHint(b key.Binding) string {
	h := b.Help()
	return menuKeyStyle.Render(h.Key) + " " + menuDescStyle.Render(h.Desc)
}

// StatusText renders dim one-line status text fitted to width, used for the
// selected button's annotation.
func StatusText(s string, width int) string {
	if width > 0 {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	return menuDescStyle.Render(s)
}

// ErrBox renders a transient error line above the menu.
type ErrBox struct {
	width int
	err   error
}

func (e *ErrBox) SetSize(width, height int) { e.width = width }

func (e *ErrBox) SetError(err error) { e.err = err }

func (e *ErrBox) Clear() { e.err = nil }

func (e *ErrBox) String() string {
	if e.err == nil {
		return ""
	}
	msg := e.err.Error()
	if e.width > 0 {
		msg = truncate.StringWithTail(msg, uint(e.width), "…")
	}
	return errStyle.Render(msg)
}
