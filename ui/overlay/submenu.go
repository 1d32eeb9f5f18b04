package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neoshelf/shelf"
)

// SubmenuOverlay presents a button's submenu entries as a transient choice
// list. Separator items render as divider lines and are skipped by the
// selection.
type SubmenuOverlay struct {
	Title    string
	items    []shelf.SubmenuItem
	selected int
	Canceled bool
	OnChoose func(*shelf.SubmenuEntry)

	width, height int
}

func NewSubmenuOverlay(title string, items []shelf.SubmenuItem) *SubmenuOverlay {
	s := &SubmenuOverlay{Title: title, items: items, selected: -1}
	s.move(1)
	return s
}

func (s *SubmenuOverlay) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Selected returns the highlighted entry, or nil when the submenu holds no
// entries at all.
func (s *SubmenuOverlay) Selected() *shelf.SubmenuEntry {
	if s.selected < 0 || s.selected >= len(s.items) {
		return nil
	}
	e, _ := s.items[s.selected].(*shelf.SubmenuEntry)
	return e
}

func (s *SubmenuOverlay) move(delta int) {
	idx := s.selected
	for {
		idx += delta
		if idx < 0 || idx >= len(s.items) {
			return
		}
		if _, ok := s.items[idx].(*shelf.SubmenuEntry); ok {
			s.selected = idx
			return
		}
	}
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed.
func (s *SubmenuOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		s.move(-1)
		return false
	case "down", "j":
		s.move(1)
		return false
	case "enter":
		if e := s.Selected(); e != nil && s.OnChoose != nil {
			s.OnChoose(e)
		}
		return true
	case "esc", "q":
		s.Canceled = true
		return true
	}
	return false
}

// Render renders the submenu overlay.
func (s *SubmenuOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true)

	entryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("#dde4f0")).
		Foreground(lipgloss.Color("#1a1a1a"))

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#555555"})

	content := titleStyle.Render(s.Title) + "\n"
	if len(s.items) == 0 {
		content += dividerStyle.Render("(empty)")
		return style.Render(content)
	}
	for i, item := range s.items {
		e, ok := item.(*shelf.SubmenuEntry)
		if !ok {
			content += dividerStyle.Render("────────") + "\n"
			continue
		}
		line := e.Label
		if i == s.selected {
			line = selectedStyle.Render(" " + line + " ")
		} else {
			line = entryStyle.Render(" " + line + " ")
		}
		content += line + "\n"
	}
	return style.Render(content)
}
