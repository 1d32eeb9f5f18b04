package overlay

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoshelf/shelf"
)

type memState struct {
	shelves json.RawMessage
	active  string
}

func (m *memState) SaveShelves(data json.RawMessage) error { m.shelves = data; return nil }
func (m *memState) GetShelves() json.RawMessage            { return m.shelves }
func (m *memState) DeleteAllShelves() error                { m.shelves = nil; return nil }
func (m *memState) GetActiveShelf() string                 { return m.active }
func (m *memState) SetActiveShelf(name string) error       { m.active = name; return nil }

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestManagerToggleHighlight(t *testing.T) {
	st := &memState{}
	cat, err := shelf.NewCatalogue(st, st)
	require.NoError(t, err)
	_, err = cat.Create("modeling")
	require.NoError(t, err)
	require.NoError(t, cat.SetActiveShelf("modeling"))

	m := NewManagerOverlay(cat)
	assert.False(t, m.HandleKeyPress(keyMsg("t")))
	assert.True(t, cat.Get("modeling").HideHighlight)
	assert.True(t, m.Changed)

	m.HandleKeyPress(keyMsg("t"))
	assert.False(t, cat.Get("modeling").HideHighlight)
}

func TestManagerFocusItem(t *testing.T) {
	st := &memState{}
	cat, err := shelf.NewCatalogue(st, st)
	require.NoError(t, err)
	btn := shelf.DefaultButton()
	btn.Name = "sphere"
	require.NoError(t, cat.AddItem("modeling", btn, -1))
	require.NoError(t, cat.AddItem("modeling", shelf.DefaultButton(), -1))
	require.NoError(t, cat.SetActiveShelf("modeling"))

	m := NewManagerOverlay(cat)
	m.FocusItem(1)
	assert.Equal(t, focusItems, m.focus)
	assert.Equal(t, 1, m.itemIdx)

	// Out of range focus clamps instead of pointing past the items.
	m.FocusItem(99)
	assert.Equal(t, 0, m.itemIdx)
}
