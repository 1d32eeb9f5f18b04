package ui

import (
	"testing"

	"neoshelf/shelf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShelf(n int, sepAt int) *shelf.Shelf {
	s := shelf.DefaultShelf("test")
	for i := 0; i < n; i++ {
		if i == sepAt {
			s.Items = append(s.Items, &shelf.Separator{})
			continue
		}
		b := shelf.DefaultButton()
		b.Name = "btn"
		b.Command = "print(1)"
		s.Items = append(s.Items, b)
	}
	return s
}

func TestHitTestSingleRow(t *testing.T) {
	v := NewShelfView(true)
	v.SetSize(CellWidth*5, 20)
	v.SetShelf(testShelf(4, -1), []string{"test"}, "test")

	// Tab bar row is never a hit.
	_, ok := v.HitTest(0, 0)
	assert.False(t, ok)

	for i := 0; i < 4; i++ {
		idx, ok := v.HitTest(i*CellWidth, headerRows)
		require.True(t, ok)
		assert.Equal(t, i, idx)

		// Last column of the same cell, second row of the label.
		idx, ok = v.HitTest(i*CellWidth+CellWidth-1, headerRows+1)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	// Past the last item but still inside the column range.
	_, ok = v.HitTest(4*CellWidth, headerRows)
	assert.False(t, ok)
}

func TestHitTestWrapsRows(t *testing.T) {
	v := NewShelfView(true)
	v.SetSize(CellWidth*3, 20) // three columns
	v.SetShelf(testShelf(5, -1), []string{"test"}, "test")

	cellH := v.cellHeight()
	idx, ok := v.HitTest(0, headerRows+cellH)
	require.True(t, ok)
	assert.Equal(t, 3, idx, "first cell of the second row")

	idx, ok = v.HitTest(CellWidth, headerRows+cellH)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = v.HitTest(2*CellWidth, headerRows+cellH)
	assert.False(t, ok, "second row has only two items")
}

func TestHitTestNoLabels(t *testing.T) {
	v := NewShelfView(false)
	v.SetSize(CellWidth*2, 20)
	v.SetShelf(testShelf(4, -1), []string{"test"}, "test")

	// Without labels each row is one cell tall.
	idx, ok := v.HitTest(0, headerRows+1)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestHitTestGutter(t *testing.T) {
	v := NewShelfView(true)
	v.SetSize(CellWidth*2+5, 20) // 5 column gutter past the grid
	v.SetShelf(testShelf(2, -1), []string{"test"}, "test")

	_, ok := v.HitTest(CellWidth*2+1, headerRows)
	assert.False(t, ok)
	_, ok = v.HitTest(-1, headerRows)
	assert.False(t, ok)
}

func TestMoveSelectionSkipsSeparators(t *testing.T) {
	v := NewShelfView(true)
	v.SetSize(CellWidth*5, 20)
	v.SetShelf(testShelf(5, 2), []string{"test"}, "test")

	v.MoveSelection(1)
	assert.Equal(t, 0, v.Selected())
	v.MoveSelection(1)
	assert.Equal(t, 1, v.Selected())
	v.MoveSelection(1)
	assert.Equal(t, 3, v.Selected(), "separator at index 2 is skipped")
	v.MoveSelection(1)
	assert.Equal(t, 4, v.Selected())
	v.MoveSelection(1)
	assert.Equal(t, 4, v.Selected(), "clamped at the end")

	v.MoveSelection(-1)
	assert.Equal(t, 3, v.Selected())
	v.MoveSelection(-1)
	assert.Equal(t, 1, v.Selected())
}

func TestSelectedButtonOnSeparator(t *testing.T) {
	v := NewShelfView(true)
	v.SetShelf(testShelf(3, 1), []string{"test"}, "test")
	v.SetSelected(1)
	assert.Equal(t, -1, v.Selected(), "separators are not selectable targets")

	v.SetSelected(0)
	require.NotNil(t, v.SelectedButton())
}
