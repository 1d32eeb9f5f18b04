package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"neoshelf/shelf"
)

// managerFocus names the pane that receives navigation keys.
type managerFocus int

const (
	focusShelves managerFocus = iota
	focusItems
)

// ManagerOverlay is the shelf manager pane. It browses the catalogue,
// switches the active shelf, and reorders or removes items. Edits go through
// the catalogue directly so they persist as they happen.
type ManagerOverlay struct {
	cat      *shelf.Catalogue
	focus    managerFocus
	shelfIdx int
	itemIdx  int
	err      error
	Changed  bool

	width, height int
}

func NewManagerOverlay(cat *shelf.Catalogue) *ManagerOverlay {
	m := &ManagerOverlay{cat: cat}
	if active := cat.ActiveShelf(); active != nil {
		for i, name := range cat.Names() {
			if name == active.Name {
				m.shelfIdx = i
				break
			}
		}
	}
	return m
}

func (m *ManagerOverlay) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// FocusItem opens the items pane focused on one item of the selected shelf,
// so a hold gesture lands the user on the button that was held.
func (m *ManagerOverlay) FocusItem(idx int) {
	m.focus = focusItems
	m.itemIdx = idx
	m.clampIndices()
}

func (m *ManagerOverlay) selectedShelf() *shelf.Shelf {
	names := m.cat.Names()
	if m.shelfIdx < 0 || m.shelfIdx >= len(names) {
		return nil
	}
	return m.cat.Get(names[m.shelfIdx])
}

func (m *ManagerOverlay) clampIndices() {
	names := m.cat.Names()
	if m.shelfIdx >= len(names) {
		m.shelfIdx = len(names) - 1
	}
	if m.shelfIdx < 0 {
		m.shelfIdx = 0
	}
	s := m.selectedShelf()
	if s == nil || m.itemIdx >= len(s.Items) {
		m.itemIdx = 0
	}
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed.
func (m *ManagerOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	m.err = nil
	switch msg.String() {
	case "esc", "q", "m":
		return true
	case "tab":
		if m.focus == focusShelves {
			m.focus = focusItems
		} else {
			m.focus = focusShelves
		}
	case "up", "k":
		if m.focus == focusShelves {
			if m.shelfIdx > 0 {
				m.shelfIdx--
				m.itemIdx = 0
			}
		} else if m.itemIdx > 0 {
			m.itemIdx--
		}
	case "down", "j":
		if m.focus == focusShelves {
			if m.shelfIdx < len(m.cat.Names())-1 {
				m.shelfIdx++
				m.itemIdx = 0
			}
		} else if s := m.selectedShelf(); s != nil && m.itemIdx < len(s.Items)-1 {
			m.itemIdx++
		}
	case "enter":
		if names := m.cat.Names(); m.shelfIdx < len(names) {
			m.err = m.cat.SetActiveShelf(names[m.shelfIdx])
			m.Changed = m.err == nil
		}
	case "H":
		m.moveItem(-1)
	case "L":
		m.moveItem(1)
	case "D":
		m.deleteSelection()
	case "t":
		m.toggleHighlight()
	}
	m.clampIndices()
	return false
}

func (m *ManagerOverlay) moveItem(delta int) {
	s := m.selectedShelf()
	if m.focus != focusItems || s == nil {
		return
	}
	to := m.itemIdx + delta
	if to < 0 || to >= len(s.Items) {
		return
	}
	if m.err = m.cat.MoveItem(s.Name, m.itemIdx, to); m.err == nil {
		m.itemIdx = to
		m.Changed = true
	}
}

// toggleHighlight flips the selected shelf's selection-highlight setting.
func (m *ManagerOverlay) toggleHighlight() {
	s := m.selectedShelf()
	if s == nil {
		return
	}
	m.err = m.cat.UpdateSettings(s.Name, func(sh *shelf.Shelf) {
		sh.HideHighlight = !sh.HideHighlight
	})
	m.Changed = m.err == nil
}

func (m *ManagerOverlay) deleteSelection() {
	s := m.selectedShelf()
	if s == nil {
		return
	}
	if m.focus == focusShelves {
		m.err = m.cat.Delete(s.Name)
	} else if len(s.Items) > 0 {
		m.err = m.cat.RemoveItem(s.Name, m.itemIdx)
	} else {
		return
	}
	m.Changed = m.err == nil
}

// Render renders the manager overlay.
func (m *ManagerOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true)

	paneTitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
		Bold(true)

	dimPaneTitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

	entryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("#dde4f0")).
		Foreground(lipgloss.Color("#1a1a1a"))

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#de613e"))

	hintStyle := dimPaneTitleStyle

	names := m.cat.Names()
	activeName := ""
	if active := m.cat.ActiveShelf(); active != nil {
		activeName = active.Name
	}

	shelfTitle, itemTitle := paneTitleStyle, dimPaneTitleStyle
	if m.focus == focusItems {
		shelfTitle, itemTitle = dimPaneTitleStyle, paneTitleStyle
	}

	left := shelfTitle.Render("Shelves") + "\n"
	for i, name := range names {
		line := name
		if name == activeName {
			line = "* " + line
		} else {
			line = "  " + line
		}
		if i == m.shelfIdx && m.focus == focusShelves {
			line = selectedStyle.Render(line)
		} else {
			line = entryStyle.Render(line)
		}
		left += line + "\n"
	}

	right := itemTitle.Render("Items") + "\n"
	if s := m.selectedShelf(); s != nil {
		for i, item := range s.Items {
			var line string
			if btn, ok := item.(*shelf.Button); ok {
				line = itemLabel(btn)
			} else {
				line = "────"
			}
			if i == m.itemIdx && m.focus == focusItems {
				line = selectedStyle.Render(line)
			} else {
				line = entryStyle.Render(line)
			}
			right += line + "\n"
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(3).Render(left), right)

	content := titleStyle.Render("Shelf Manager") + "\n" + body
	if m.err != nil {
		content += "\n" + errStyle.Render(m.err.Error())
	}
	content += "\n" + hintStyle.Render("tab pane  enter activate  H/L move  D delete  t highlight  esc close")
	return style.Render(content)
}

func itemLabel(btn *shelf.Button) string {
	label := btn.Name
	if label == "" {
		label = btn.DisplayLabel()
	}
	if label == "" {
		label = btn.Command
	}
	return runewidth.Truncate(label, 24, "…")
}
