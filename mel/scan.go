package mel

import (
	"sort"
	"strconv"
	"strings"
)

// blockKind distinguishes the two item block keywords.
type blockKind int

const (
	blockButton blockKind = iota
	blockSeparator
)

// block is one item block located in a document, with the offset of its
// keyword so blocks found per keyword can be interleaved by position.
type block struct {
	kind  blockKind
	start int
	body  string
}

// isIdentChar reports whether c can be part of a keyword identifier.
func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// findBlocks locates every item block in the document. The two keywords are
// searched independently and the results merged by start offset, so a
// button block followed by an earlier separator block still comes out in
// source order. A block body runs from the keyword to the first line that
// holds nothing but the ; terminator; a ; inside a quoted payload never
// ends a block because it shares its line with other content.
func findBlocks(content string) []block {
	var blocks []block
	blocks = append(blocks, findKeywordBlocks(content, "shelfButton", blockButton)...)
	blocks = append(blocks, findKeywordBlocks(content, "separator", blockSeparator)...)

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })
	return blocks
}

func findKeywordBlocks(content, keyword string, kind blockKind) []block {
	var blocks []block
	for off := 0; ; {
		idx := strings.Index(content[off:], keyword)
		if idx < 0 {
			break
		}
		start := off + idx
		end := start + len(keyword)
		off = end

		// Reject matches inside longer identifiers
		if start > 0 && isIdentChar(content[start-1]) {
			continue
		}
		if end >= len(content) || isIdentChar(content[end]) {
			continue
		}

		body, ok := scanToTerminator(content[end:])
		if !ok {
			continue
		}
		blocks = append(blocks, block{kind: kind, start: start, body: body})
		off = end + len(body)
	}
	return blocks
}

// scanToTerminator returns the text up to (not including) the first line
// consisting solely of a ; after optional indentation.
func scanToTerminator(s string) (string, bool) {
	lineStart := 0
	for lineStart < len(s) {
		lineEnd := strings.IndexByte(s[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(s)
		} else {
			lineEnd += lineStart
		}

		line := s[lineStart:lineEnd]
		if lineStart > 0 && strings.TrimSpace(line) == ";" {
			return s[:lineStart-1], true // exclude the newline before the terminator
		}

		if lineEnd == len(s) {
			break
		}
		lineStart = lineEnd + 1
	}
	return "", false
}

// stringFlag extracts the raw (still escaped) value of -name "<value>" from
// a block body. The opening quote must follow the flag name after
// whitespace; within the value a backslash escapes the next character.
func stringFlag(body, name string) (string, bool) {
	flag := "-" + name
	for off := 0; ; {
		idx := strings.Index(body[off:], flag)
		if idx < 0 {
			return "", false
		}
		pos := off + idx
		off = pos + len(flag)

		// The flag must start a token
		if pos > 0 && !isSpace(body[pos-1]) {
			continue
		}

		i := pos + len(flag)
		j := skipSpace(body, i)
		if j == i || j >= len(body) || body[j] != '"' {
			continue
		}

		value, end, ok := scanQuoted(body, j)
		if !ok {
			continue
		}
		_ = end
		return value, true
	}
}

// scanQuoted reads a double-quoted string starting at the opening quote,
// honoring backslash escapes, and returns the raw inner text.
func scanQuoted(s string, open int) (value string, end int, ok bool) {
	i := open + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case '"':
			return s[open+1 : i], i + 1, true
		default:
			i++
		}
	}
	return "", 0, false
}

// numericFlag extracts exactly count whitespace-separated floats following
// -name. Scanning stops at the first token that does not parse as a float
// or that looks like another flag; fewer than count floats means the flag
// is absent. The flag-looking check treats a leading - followed by
// anything non-numeric as a flag, which can misread adversarial input such
// as a bare "-" token; kept as-is for compatibility with the legacy files.
func numericFlag(body, name string, count int) ([]float64, bool) {
	flag := "-" + name
	idx := findFlagToken(body, flag)
	if idx < 0 {
		return nil, false
	}

	rest := body[idx+len(flag):]
	var nums []float64
	for _, tok := range strings.Fields(rest) {
		if looksLikeFlag(tok) {
			break
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			break
		}
		nums = append(nums, f)
		if len(nums) >= count {
			break
		}
	}

	if len(nums) != count {
		return nil, false
	}
	return nums, true
}

// findFlagToken locates -name followed by whitespace at a token boundary.
func findFlagToken(body, flag string) int {
	for off := 0; ; {
		idx := strings.Index(body[off:], flag)
		if idx < 0 {
			return -1
		}
		pos := off + idx
		off = pos + len(flag)

		if pos > 0 && !isSpace(body[pos-1]) {
			continue
		}
		after := pos + len(flag)
		if after >= len(body) || !isSpace(body[after]) {
			continue
		}
		return pos
	}
}

// looksLikeFlag reports whether a token reads as another flag rather than a
// number: it starts with - and, once . and - are stripped, is not a
// non-empty digit run.
func looksLikeFlag(tok string) bool {
	if len(tok) == 0 || tok[0] != '-' {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, tok[1:])
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

// submenuEntry is one -mi "<label>" ( "<command>" ) match.
type submenuEntry struct {
	label   string
	command string // raw, still escaped
}

// submenuEntries extracts every -mi entry from a block body. The label is
// taken literally with no escape handling; the command is a full escaped
// string. Malformed entries are skipped.
func submenuEntries(body string) []submenuEntry {
	var entries []submenuEntry
	const flag = "-mi"
	for off := 0; ; {
		idx := strings.Index(body[off:], flag)
		if idx < 0 {
			return entries
		}
		pos := off + idx
		off = pos + len(flag)

		if pos > 0 && !isSpace(body[pos-1]) {
			continue
		}

		i := skipSpace(body, pos+len(flag))
		if i == pos+len(flag) || i >= len(body) || body[i] != '"' {
			continue
		}

		// Literal label: runs to the next quote, no escapes, must be non-empty
		labelEnd := strings.IndexByte(body[i+1:], '"')
		if labelEnd <= 0 {
			continue
		}
		label := body[i+1 : i+1+labelEnd]
		i += labelEnd + 2

		i = skipSpace(body, i)
		if i >= len(body) || body[i] != '(' {
			continue
		}
		i = skipSpace(body, i+1)
		if i >= len(body) || body[i] != '"' {
			continue
		}

		command, end, ok := scanQuoted(body, i)
		if !ok {
			continue
		}
		i = skipSpace(body, end)
		if i >= len(body) || body[i] != ')' {
			continue
		}

		entries = append(entries, submenuEntry{label: label, command: command})
		off = i + 1
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}
