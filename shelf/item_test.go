package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandKind(t *testing.T) {
	assert.Equal(t, KindMEL, ParseCommandKind("mel"))
	assert.Equal(t, KindMEL, ParseCommandKind("MEL"))
	assert.Equal(t, KindMEL, ParseCommandKind(" Mel "))
	assert.Equal(t, KindPython, ParseCommandKind("python"))
	assert.Equal(t, KindPython, ParseCommandKind(""))
	assert.Equal(t, KindPython, ParseCommandKind("javascript"))
}

func TestDefaultButton(t *testing.T) {
	b := DefaultButton()
	assert.Equal(t, DefaultIcon, b.Icon)
	assert.Equal(t, KindPython, b.Kind)
	assert.Equal(t, KindPython, b.ShiftKind)
	assert.Nil(t, b.BgColor)
	assert.Nil(t, b.IconTint)
}

func TestDisplayLabelTruncation(t *testing.T) {
	b := DefaultButton()
	b.Label = "VeryLongLabelText"
	assert.Equal(t, "VeryLong", b.DisplayLabel())

	// wide runes count double
	b.Label = "ポリゴン球体"
	assert.Equal(t, "ポリゴン", b.DisplayLabel())
}

func TestSecondaryCommandFallsBackToMain(t *testing.T) {
	b := DefaultButton()
	b.Command = "polySphere;"
	b.Kind = KindMEL

	cmd, kind := b.SecondaryCommand()
	assert.Equal(t, "polySphere;", cmd)
	assert.Equal(t, KindMEL, kind)

	b.ShiftCommand = "print('alt')"
	b.ShiftKind = KindPython
	cmd, kind = b.SecondaryCommand()
	assert.Equal(t, "print('alt')", cmd)
	assert.Equal(t, KindPython, kind)
}

func TestUnmarshalItemsAppliesDefaults(t *testing.T) {
	items, err := UnmarshalItems([]byte(`[{"name":"x","icon":""},{"separator":true}]`))
	require.NoError(t, err)
	require.Len(t, items, 2)

	b := items[0].(*Button)
	assert.Equal(t, DefaultIcon, b.Icon, "empty icon falls back to the sentinel")
	assert.Equal(t, KindPython, b.Kind)

	_, isSep := items[1].(*Separator)
	assert.True(t, isSep)
}
