package shelf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultIcon is the icon used when a button does not name one
	DefaultIcon = "commandButton.png"
	// LabelDisplayWidth is the maximum rendered width of an overlay label
	LabelDisplayWidth = 8
)

// CommandKind identifies the scripting language a command string is written in.
type CommandKind int

const (
	KindPython CommandKind = iota
	KindMEL
)

// ParseCommandKind maps a legacy sourceType string onto a CommandKind.
// Matching is case-insensitive; anything that is not "mel" is Python.
func ParseCommandKind(s string) CommandKind {
	if strings.EqualFold(strings.TrimSpace(s), "mel") {
		return KindMEL
	}
	return KindPython
}

func (k CommandKind) String() string {
	if k == KindMEL {
		return "mel"
	}
	return "python"
}

func (k CommandKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *CommandKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ParseCommandKind(s)
	return nil
}

// Item is one entry on a shelf: either a *Button or a *Separator.
// The closed variant keeps separator entries structurally free of button
// fields, so callers can never read a command off a separator.
type Item interface {
	item()
}

// Separator is a visual divider between buttons. It carries no data.
type Separator struct{}

func (*Separator) item() {}

// Button is a single command button on a shelf.
type Button struct {
	// Name is the button's identity shown in the manager
	Name string `json:"name"`
	// Icon is an icon file name or path
	Icon string `json:"icon"`
	// Label is the short text drawn over the icon
	Label string `json:"label"`

	// Optional appearance overrides, each channel in [0,1]
	BgColor        *[3]float64 `json:"bg_color"`
	IconTint       *[3]float64 `json:"icon_tint"`
	LabelBgColor   *[4]float64 `json:"label_bg_color"`
	LabelTextColor *[3]float64 `json:"label_text_color"`

	Command      string      `json:"command"`
	Kind         CommandKind `json:"command_type"`
	ShiftCommand string      `json:"shift_command"`
	ShiftKind    CommandKind `json:"shift_command_type"`

	Submenu []SubmenuItem `json:"submenu"`

	// Annotation is the tooltip text
	Annotation string `json:"annotation"`
}

func (*Button) item() {}

// DefaultButton returns a button with the standard defaults applied.
func DefaultButton() *Button {
	return &Button{
		Icon:      DefaultIcon,
		Kind:      KindPython,
		ShiftKind: KindPython,
	}
}

// DisplayLabel returns the overlay label truncated to the display width.
func (b *Button) DisplayLabel() string {
	return runewidth.Truncate(b.Label, LabelDisplayWidth, "")
}

// SecondaryCommand returns the shift command, falling back to the main
// command when no shift command is set.
func (b *Button) SecondaryCommand() (string, CommandKind) {
	if b.ShiftCommand == "" {
		return b.Command, b.Kind
	}
	return b.ShiftCommand, b.ShiftKind
}

// SubmenuItem is one entry in a button's submenu: either a *SubmenuEntry
// or a *SubmenuSeparator.
type SubmenuItem interface {
	submenuItem()
}

// SubmenuEntry is a selectable submenu command.
type SubmenuEntry struct {
	Label   string      `json:"label"`
	Command string      `json:"command"`
	Kind    CommandKind `json:"type"`
}

func (*SubmenuEntry) submenuItem() {}

// SubmenuSeparator is a divider between submenu entries.
type SubmenuSeparator struct{}

func (*SubmenuSeparator) submenuItem() {}

// separator-marker envelopes used on the wire; a separator is distinguished
// by its tag, never by sentinel field values on a button

type separatorJSON struct {
	Separator bool `json:"separator"`
}

// MarshalItems serializes an ordered item sequence to JSON.
func MarshalItems(items []Item) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		var (
			data []byte
			err  error
		)
		switch v := it.(type) {
		case *Separator:
			data, err = json.Marshal(separatorJSON{Separator: true})
		case *Button:
			data, err = json.Marshal(v)
		default:
			err = fmt.Errorf("unknown item type %T", it)
		}
		if err != nil {
			return nil, err
		}
		raw = append(raw, data)
	}
	return json.Marshal(raw)
}

// UnmarshalItems deserializes an ordered item sequence from JSON.
func UnmarshalItems(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		var sep separatorJSON
		if err := json.Unmarshal(r, &sep); err == nil && sep.Separator {
			items = append(items, &Separator{})
			continue
		}

		btn := DefaultButton()
		if err := json.Unmarshal(r, btn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal button: %w", err)
		}
		if btn.Icon == "" {
			btn.Icon = DefaultIcon
		}
		items = append(items, btn)
	}
	return items, nil
}

// submenu items share the same envelope trick

func (b *Button) UnmarshalJSON(data []byte) error {
	type buttonAlias Button
	aux := struct {
		*buttonAlias
		Submenu []json.RawMessage `json:"submenu"`
	}{buttonAlias: (*buttonAlias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Submenu = nil
	for _, r := range aux.Submenu {
		var sep separatorJSON
		if err := json.Unmarshal(r, &sep); err == nil && sep.Separator {
			b.Submenu = append(b.Submenu, &SubmenuSeparator{})
			continue
		}
		var entry SubmenuEntry
		if err := json.Unmarshal(r, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal submenu entry: %w", err)
		}
		b.Submenu = append(b.Submenu, &entry)
	}
	return nil
}

func (b *Button) MarshalJSON() ([]byte, error) {
	type buttonAlias Button
	submenu := make([]json.RawMessage, 0, len(b.Submenu))
	for _, it := range b.Submenu {
		var (
			data []byte
			err  error
		)
		switch v := it.(type) {
		case *SubmenuSeparator:
			data, err = json.Marshal(separatorJSON{Separator: true})
		case *SubmenuEntry:
			data, err = json.Marshal(v)
		default:
			err = fmt.Errorf("unknown submenu item type %T", it)
		}
		if err != nil {
			return nil, err
		}
		submenu = append(submenu, data)
	}

	return json.Marshal(struct {
		*buttonAlias
		Submenu []json.RawMessage `json:"submenu"`
	}{buttonAlias: (*buttonAlias)(b), Submenu: submenu})
}
