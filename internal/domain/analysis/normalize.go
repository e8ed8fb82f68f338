package analysis

import (
	"regexp"
	"strings"
)

// Text holds the two normalized variants of one model response.
//
// Raw keeps line structure and is what the section and label extractors
// read. Display is a single collapsed line; only Timeline and the emptiness
// check read it.
type Text struct {
	Raw     string
	Display string
}

var (
	// Debug renderings of regex matches and string-index ranges that the
	// model sometimes echoes back into its answer.
	rxMatchDump = regexp.MustCompile(`Match\(anyRegexOutput:.*?\)`)
	rxIndexDump = regexp.MustCompile(`\.\.<[A-Za-z.]*String\.Index.*?\)`)
	// Doubled label word, e.g. "Timeline: Age Age 30". Runs after whitespace
	// has been collapsed, so a single space separator is enough.
	rxAgeAge = regexp.MustCompile(`\bAge(?: Age\b)+`)
)

// Normalize returns both text variants. It never fails.
func Normalize(raw string) Text {
	return Text{Raw: NormalizeRaw(raw), Display: NormalizeDisplay(raw)}
}

// NormalizeDisplay strips artifacts and collapses all whitespace, newlines
// included, into single spaces.
func NormalizeDisplay(s string) string {
	return fixpoint(s, func(in string) string {
		out := stripArtifacts(in)
		out = strings.Join(strings.Fields(out), " ")
		return rxAgeAge.ReplaceAllString(out, "Age")
	})
}

// NormalizeRaw strips artifacts and collapses whitespace inside each line
// while keeping the line breaks the block extractor depends on.
func NormalizeRaw(s string) string {
	return fixpoint(s, func(in string) string {
		out := strings.ReplaceAll(in, "\r\n", "\n")
		out = strings.ReplaceAll(out, "\r", "\n")
		out = stripArtifacts(out)
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			line = strings.Join(strings.Fields(line), " ")
			lines[i] = rxAgeAge.ReplaceAllString(line, "Age")
		}
		return strings.Trim(strings.Join(lines, "\n"), "\n")
	})
}

func stripArtifacts(s string) string {
	s = rxMatchDump.ReplaceAllString(s, "")
	return rxIndexDump.ReplaceAllString(s, "")
}

// fixpoint applies step until the string stops changing. Every step is
// non-growing, so this terminates after at most len(s) passes and the result
// is stable under another application.
func fixpoint(s string, step func(string) string) string {
	for {
		next := step(s)
		if next == s {
			return s
		}
		s = next
	}
}
