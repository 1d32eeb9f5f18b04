package ui

import (
	"strings"

	"neoshelf/shelf"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	// CellWidth is the fixed width of one shelf cell in terminal columns.
	// HitTest relies on every cell having exactly this footprint.
	CellWidth = 12
	// headerRows is the number of rows above the button grid (the tab bar).
	headerRows = 1
)

var tabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#777777"})

var activeTabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var buttonStyle = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Width(CellWidth)

var selectedButtonStyle = buttonStyle.
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var separatorStyle = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Width(CellWidth).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#555555"})

// ShelfView renders one shelf as a fixed-size cell grid with a tab bar of
// shelf names above it. The grid math in Render and HitTest must stay in
// sync: HitTest is the inverse of cell placement.
type ShelfView struct {
	shelf       *shelf.Shelf
	shelfNames  []string
	activeName  string
	selectedIdx int
	showLabels  bool

	width, height int
}

func NewShelfView(showLabels bool) *ShelfView {
	return &ShelfView{showLabels: showLabels, selectedIdx: -1}
}

func (v *ShelfView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetShelf replaces the displayed shelf and resets the selection when the
// old index no longer exists.
func (v *ShelfView) SetShelf(s *shelf.Shelf, names []string, active string) {
	v.shelf = s
	v.shelfNames = names
	v.activeName = active
	if v.shelf == nil || v.selectedIdx >= len(v.shelf.Items) {
		v.selectedIdx = -1
	}
}

func (v *ShelfView) Selected() int { return v.selectedIdx }

// SetSelected moves the selection to idx. Out of range indices and
// separators clear the selection.
func (v *ShelfView) SetSelected(idx int) {
	if v.shelf == nil || idx < 0 || idx >= len(v.shelf.Items) {
		v.selectedIdx = -1
		return
	}
	if _, ok := v.shelf.Items[idx].(*shelf.Button); !ok {
		v.selectedIdx = -1
		return
	}
	v.selectedIdx = idx
}

// MoveSelection shifts the selection by delta, skipping separators and
// clamping at the ends.
func (v *ShelfView) MoveSelection(delta int) {
	if v.shelf == nil || len(v.shelf.Items) == 0 {
		return
	}
	idx := v.selectedIdx
	if idx < 0 {
		idx = 0
		delta = 0
	}
	for {
		idx += delta
		if idx < 0 || idx >= len(v.shelf.Items) {
			return
		}
		if _, ok := v.shelf.Items[idx].(*shelf.Button); ok {
			v.selectedIdx = idx
			return
		}
		if delta == 0 {
			delta = 1
		}
	}
}

// SelectedButton returns the button under the selection, or nil when the
// selection is empty or rests on a separator.
func (v *ShelfView) SelectedButton() *shelf.Button {
	if v.shelf == nil || v.selectedIdx < 0 || v.selectedIdx >= len(v.shelf.Items) {
		return nil
	}
	b, _ := v.shelf.Items[v.selectedIdx].(*shelf.Button)
	return b
}

func (v *ShelfView) cellHeight() int {
	if v.showLabels {
		return 2
	}
	return 1
}

func (v *ShelfView) columns() int {
	cols := v.width / CellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// HitTest maps a terminal coordinate to an item index on the shelf. The
// second result is false when the coordinate falls on the tab bar, in the
// gutter past the last column, or beyond the last item.
func (v *ShelfView) HitTest(x, y int) (int, bool) {
	if v.shelf == nil || x < 0 || y < headerRows {
		return 0, false
	}
	col := x / CellWidth
	if col >= v.columns() {
		return 0, false
	}
	row := (y - headerRows) / v.cellHeight()
	idx := row*v.columns() + col
	if idx >= len(v.shelf.Items) {
		return 0, false
	}
	return idx, true
}

func (v *ShelfView) String() string {
	var b strings.Builder
	b.WriteString(v.renderTabs())
	b.WriteString("\n")
	if v.shelf == nil || len(v.shelf.Items) == 0 {
		b.WriteString(listDescStyle.Render("shelf is empty, import with 'neoshelf import' or press m"))
		return b.String()
	}

	cols := v.columns()
	rows := make([]string, 0, len(v.shelf.Items)/cols+1)
	for start := 0; start < len(v.shelf.Items); start += cols {
		end := start + cols
		if end > len(v.shelf.Items) {
			end = len(v.shelf.Items)
		}
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, v.renderCell(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (v *ShelfView) renderTabs() string {
	tabs := make([]string, 0, len(v.shelfNames))
	for _, name := range v.shelfNames {
		if name == v.activeName {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (v *ShelfView) renderCell(idx int) string {
	item := v.shelf.Items[idx]
	btn, ok := item.(*shelf.Button)
	if !ok {
		lines := make([]string, v.cellHeight())
		for i := range lines {
			lines[i] = separatorStyle.Render("│")
		}
		return strings.Join(lines, "\n")
	}

	style := buttonStyle
	if idx == v.selectedIdx && !v.shelf.HideHighlight {
		style = selectedButtonStyle.
			Background(ColorRGB(v.shelf.ActiveHighlightColor))
	} else if btn.BgColor != nil {
		style = style.Background(ColorRGB(*btn.BgColor))
	}

	face := v.buttonFace(btn)
	if !v.showLabels {
		return style.Render(face)
	}
	label := btn.DisplayLabel()
	labelStyle := style
	if idx != v.selectedIdx || v.shelf.HideHighlight {
		if btn.LabelBgColor != nil {
			labelStyle = labelStyle.Background(ColorRGBA(*btn.LabelBgColor))
		}
		if btn.LabelTextColor != nil {
			labelStyle = labelStyle.Foreground(ColorRGB(*btn.LabelTextColor))
		}
	}
	return style.Render(face) + "\n" + labelStyle.Render(label)
}

// buttonFace picks the short text shown in a cell's first row. Terminals
// have no icon files, so the icon name degrades to its stem.
func (v *ShelfView) buttonFace(btn *shelf.Button) string {
	face := btn.Name
	if face == "" {
		face = iconStem(btn.Icon)
	}
	return runewidth.Truncate(face, CellWidth-2, "…")
}

func iconStem(icon string) string {
	if icon == "" {
		icon = shelf.DefaultIcon
	}
	if i := strings.LastIndexByte(icon, '/'); i >= 0 {
		icon = icon[i+1:]
	}
	if i := strings.LastIndexByte(icon, '.'); i > 0 {
		icon = icon[:i]
	}
	return icon
}
