package mel

import (
	"regexp"
	"strings"

	"neoshelf/shelf"
)

// Indicator patterns for DetectKind. Python wins ties; an empty or
// undetermined snippet defaults to Python.
var (
	pythonIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^import\s+`),
		regexp.MustCompile(`(?m)^from\s+\w+\s+import`),
		regexp.MustCompile(`(?m)^def\s+\w+\s*\(`),
		regexp.MustCompile(`(?m)^class\s+\w+`),
		regexp.MustCompile(`(?m)^\s*print\s*\(`),
		regexp.MustCompile(`cmds\.`),
		regexp.MustCompile(`pymel\.`),
		regexp.MustCompile(`maya\.cmds`),
		regexp.MustCompile(`__\w+__`),
		regexp.MustCompile(`\.format\(`),
		regexp.MustCompile(`f".*\{`),
		regexp.MustCompile(`f'.*\{`),
	}

	melIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^global\s+proc\s+`),
		regexp.MustCompile(`(?m)^proc\s+`),
		regexp.MustCompile(`(?m)^\s*\$\w+\s*=`),
		regexp.MustCompile(`(?m);\s*$`),
		regexp.MustCompile("`[^`]+`"),
		regexp.MustCompile(`-\w+\s+\d`),
		regexp.MustCompile(`-\w+\s+"`),
		regexp.MustCompile(`-\w+\s+\$`),
	}
)

// DetectKind guesses whether pasted command text is MEL or Python from
// syntax indicators. Used when the user adds a button by hand without
// declaring the language.
func DetectKind(code string) shelf.CommandKind {
	code = strings.TrimSpace(code)
	if code == "" {
		return shelf.KindPython
	}

	for _, re := range pythonIndicators {
		if re.MatchString(code) {
			return shelf.KindPython
		}
	}
	for _, re := range melIndicators {
		if re.MatchString(code) {
			return shelf.KindMEL
		}
	}

	return shelf.KindPython
}
