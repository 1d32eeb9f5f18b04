package mel

import (
	"errors"
	"regexp"
	"strings"

	"neoshelf/shelf"
)

// ErrInvalidHeader is returned when a document does not open with the
// global proc declaration every legacy shelf file starts with. It is the
// only fatal parse error; everything else degrades to absent fields.
var ErrInvalidHeader = errors.New("invalid shelf file: must start with 'global proc name ()'")

// shelfProcPrefix is stripped from the declared proc name to recover the
// user-visible shelf name.
const shelfProcPrefix = "shelf_"

var headerRe = regexp.MustCompile(`^\s*global\s+proc\s+(\w+)\s*\(\s*\)`)

// Document is the result of parsing one legacy shelf file.
type Document struct {
	// Name is the shelf name, with the shelf_ prefix stripped
	Name string
	// Items are the parsed buttons and separators in source order
	Items []shelf.Item
}

// Parse extracts a shelf name and its ordered items from legacy shelf file
// text. Invalid UTF-8 is replaced rather than rejected. Unrecognized flags
// are ignored; a malformed flag value makes that one flag absent and never
// fails the document.
func Parse(content string) (*Document, error) {
	content = strings.ToValidUTF8(content, string('�'))

	m := headerRe.FindStringSubmatch(content)
	if m == nil {
		return nil, ErrInvalidHeader
	}
	name := strings.TrimPrefix(m[1], shelfProcPrefix)

	doc := &Document{Name: name}
	for _, blk := range findBlocks(content) {
		switch blk.kind {
		case blockSeparator:
			doc.Items = append(doc.Items, &shelf.Separator{})
		case blockButton:
			doc.Items = append(doc.Items, parseButton(blk.body))
		}
	}
	return doc, nil
}

// parseButton extracts the recognized flags from one shelfButton block
// body. Parsing is purely local to the block: no other block and no
// document state can change the result.
func parseButton(body string) *shelf.Button {
	btn := shelf.DefaultButton()

	if v, ok := stringFlag(body, "annotation"); ok && v != "" {
		btn.Annotation = Unescape(v)
	}
	if v, ok := stringFlag(body, "label"); ok && v != "" {
		btn.Name = Unescape(v)
	}
	if v, ok := stringFlag(body, "imageOverlayLabel"); ok && v != "" {
		btn.Label = Unescape(v)
	}

	// Prefer image1 over image
	icon, ok := stringFlag(body, "image1")
	if !ok || icon == "" {
		icon, _ = stringFlag(body, "image")
	}
	if icon != "" {
		btn.Icon = strings.ReplaceAll(Unescape(icon), `\`, "/")
	}

	if v, ok := stringFlag(body, "command"); ok && v != "" {
		btn.Command = Unescape(v)
	}
	if v, ok := stringFlag(body, "sourceType"); ok && v != "" {
		btn.Kind = shelf.ParseCommandKind(Unescape(v))
	}
	if v, ok := stringFlag(body, "doubleClickCommand"); ok && v != "" {
		btn.ShiftCommand = Unescape(v)
		btn.ShiftKind = btn.Kind
	}

	if nums, ok := numericFlag(body, "overlayLabelColor", 3); ok {
		btn.LabelTextColor = &[3]float64{nums[0], nums[1], nums[2]}
	}
	if nums, ok := numericFlag(body, "overlayLabelBackColor", 4); ok {
		btn.LabelBgColor = &[4]float64{nums[0], nums[1], nums[2], nums[3]}
	}

	for _, e := range submenuEntries(body) {
		btn.Submenu = append(btn.Submenu, &shelf.SubmenuEntry{
			Label:   e.label,
			Command: Unescape(e.command),
			Kind:    btn.Kind,
		})
	}

	return btn
}
