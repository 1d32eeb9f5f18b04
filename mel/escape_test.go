package mel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`a\rb`, "a\rb"},
		{`say \"hi\"`, `say "hi"`},
		// A literal backslash must not be re-read as starting an escape:
		// \\n is backslash + n, not backslash + newline
		{`a\\nb`, `a\nb`},
		{`a\\\\b`, `a\\b`},
		{`end\\`, `end\`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Unescape(tc.in), "input %q", tc.in)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"line1\nline2",
		"tab\there",
		"return\rhere",
		`quote " inside`,
		`back\slash`,
		`double\\slash`,
		`trailing\`,
		"all of it: \\ \" \n \t \r mixed \\n \\t",
	}
	for _, s := range cases {
		assert.Equal(t, s, Unescape(Escape(s)), "input %q", s)
	}
}
