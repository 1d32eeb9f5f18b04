package mel

import "strings"

// placeholder protects literal backslashes during unescaping so that the
// resolved character of one escape can never start another
const placeholder = "\x00"

// Unescape resolves the legacy string escapes \\ \n \t \r \".
// Literal backslashes are replaced with a placeholder first and restored
// last, which makes the substitution order-safe.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, `\\`, placeholder)
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, placeholder, `\`)
	return s
}

// Escape is the inverse of Unescape, producing text safe to embed in a
// double-quoted legacy string.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return s
}
