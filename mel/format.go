package mel

import (
	"fmt"
	"strconv"
	"strings"

	"neoshelf/shelf"
)

// Format serializes a shelf back to the legacy grammar. The output parses
// back to the same item sequence for every field the grammar can carry;
// submenu separators and appearance fields the grammar has no flags for
// are omitted.
func Format(sh *shelf.Shelf) string {
	var b strings.Builder

	fmt.Fprintf(&b, "global proc %s%s ()\n{\n", shelfProcPrefix, identifier(sh.Name))

	for _, it := range sh.Items {
		switch v := it.(type) {
		case *shelf.Separator:
			b.WriteString("    separator\n        -style \"shelf\"\n        ;\n")
		case *shelf.Button:
			formatButton(&b, v)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func formatButton(b *strings.Builder, btn *shelf.Button) {
	b.WriteString("    shelfButton\n")

	writeString := func(flag, value string) {
		if value != "" {
			fmt.Fprintf(b, "        -%s \"%s\"\n", flag, Escape(value))
		}
	}

	writeString("annotation", btn.Annotation)
	writeString("label", btn.Name)
	writeString("imageOverlayLabel", btn.Label)
	writeString("image", btn.Icon)
	writeString("image1", btn.Icon)

	if btn.LabelTextColor != nil {
		fmt.Fprintf(b, "        -overlayLabelColor %s\n", floats(btn.LabelTextColor[:]))
	}
	if btn.LabelBgColor != nil {
		fmt.Fprintf(b, "        -overlayLabelBackColor %s\n", floats(btn.LabelBgColor[:]))
	}

	writeString("sourceType", btn.Kind.String())
	writeString("command", btn.Command)
	writeString("doubleClickCommand", btn.ShiftCommand)

	for _, item := range btn.Submenu {
		entry, ok := item.(*shelf.SubmenuEntry)
		if !ok || entry.Label == "" {
			continue // the -mi grammar cannot express separators or empty labels
		}
		fmt.Fprintf(b, "        -mi \"%s\" ( \"%s\" )\n",
			strings.ReplaceAll(entry.Label, `"`, "'"), Escape(entry.Command))
	}

	b.WriteString("        ;\n")
}

func floats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// identifier rewrites a shelf name into a valid proc identifier.
func identifier(name string) string {
	id := strings.Map(func(r rune) rune {
		if r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	if id == "" {
		id = "Shelf"
	}
	return id
}
