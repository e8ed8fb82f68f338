package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Text scanning primitives. All of them are total: out-of-range offsets and
// short input yield a miss, never a panic.

// labelOffsets returns the offset just past the colon of every "label:" in s,
// in order of appearance.
func labelOffsets(s, label string) []int {
	needle := label + ":"
	var out []int
	for from := 0; from <= len(s); {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			break
		}
		end := from + i + len(needle)
		out = append(out, end)
		from = end
	}
	return out
}

// lineLabelOffsets is labelOffsets restricted to labels that open a line:
// only spaces, tabs or a "- " bullet may precede them.
func lineLabelOffsets(s, label string) []int {
	var out []int
	for _, end := range labelOffsets(s, label) {
		start := end - len(label) - 1
		lineStart := strings.LastIndexByte(s[:start], '\n') + 1
		lead := strings.TrimLeft(s[lineStart:start], " \t")
		if lead == "" || lead == bullet {
			out = append(out, end)
		}
	}
	return out
}

// restOfLine returns s[from:] up to the next line break, trimmed.
func restOfLine(s string, from int) string {
	if from < 0 || from > len(s) {
		return ""
	}
	rest := s[from:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

// leadingWord returns the letters at the start of s after horizontal
// whitespace: "  Low, based on" yields "Low".
func leadingWord(s string) string {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	return s[:end]
}

// leadingDigits returns the ASCII digit run at the start of s.
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// leadingRange matches "NN", "NN-NN" or "NN–NN" at the start of s.
func leadingRange(s string) (string, bool) {
	lo := leadingDigits(s)
	if lo == "" {
		return "", false
	}
	rest := s[len(lo):]
	for _, dash := range []string{"-", "–"} {
		if strings.HasPrefix(rest, dash) {
			if hi := leadingDigits(rest[len(dash):]); hi != "" {
				return lo + dash + hi, true
			}
		}
	}
	return lo, true
}

// fieldValue looks for a line starting with "label:" (an optional "- "
// bullet marker is ignored) and returns the trimmed text after the colon.
func fieldValue(lines []string, label string) string {
	prefix := label + ":"
	for _, line := range lines {
		line = strings.TrimPrefix(line, bullet)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}
