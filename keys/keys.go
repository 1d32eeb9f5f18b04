package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyLeft KeyName = iota
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyQuit
	KeyHelp
	KeyEsc

	KeyManager    // Open the shelf manager pane
	KeySubmenu    // Show the selected button's submenu
	KeyNextShelf  // Cycle to the next shelf
	KeyPrevShelf  // Cycle to the previous shelf
	KeyMoveLeft   // Move the selected item towards the front
	KeyMoveRight  // Move the selected item towards the back
	KeyDeleteItem // Remove the selected item
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"left":      KeyLeft,
	"h":         KeyLeft,
	"right":     KeyRight,
	"l":         KeyRight,
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"enter":     KeyEnter,
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
	"?":         KeyHelp,
	"esc":       KeyEsc,
	"m":         KeyManager,
	"s":         KeySubmenu,
	"tab":       KeyNextShelf,
	"shift+tab": KeyPrevShelf,
	"H":         KeyMoveLeft,
	"L":         KeyMoveRight,
	"D":         KeyDeleteItem,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous button"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next button"),
	),
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "run"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyManager: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "manager"),
	),
	KeySubmenu: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "submenu"),
	),
	KeyNextShelf: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next shelf"),
	),
	KeyPrevShelf: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous shelf"),
	),
	KeyMoveLeft: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "move item left"),
	),
	KeyMoveRight: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "move item right"),
	),
	KeyDeleteItem: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete item"),
	),
}
