package analysis

import "strings"

// ExtractTimeline reads the Display text. It returns the age token after
// "Timeline: Age", either a single number or a range such as "30-35".
func ExtractTimeline(display string) (string, bool) {
	for _, at := range labelOffsets(display, LabelTimeline) {
		rest := strings.TrimLeft(display[at:], " \t\n")
		if !strings.HasPrefix(rest, "Age") {
			continue
		}
		rest = strings.TrimLeft(rest[len("Age"):], " \t\n")
		if v, ok := leadingRange(rest); ok {
			return v, true
		}
	}
	return "", false
}

// ExtractCurrentStage reads the Raw text so the line boundary of the
// description survives. The value runs to the end of the label's line.
func ExtractCurrentStage(raw string) (string, bool) {
	for _, at := range labelOffsets(raw, LabelCurrentStage) {
		if v := restOfLine(raw, at); v != "" {
			return v, true
		}
	}
	return "", false
}

// ExtractRiskLevel reads the Raw text. The first word after the label must
// be one of the enum literals exactly; anything else counts as absent.
func ExtractRiskLevel(raw string) (RiskLevel, bool) {
	for _, at := range labelOffsets(raw, LabelRiskLevel) {
		if lvl, ok := ParseRiskLevel(leadingWord(restOfLine(raw, at))); ok {
			return lvl, true
		}
	}
	return "", false
}

// riskToken returns the word that follows the first "Risk Level:" label, or
// the first field of that line when it does not start with a letter. It
// names the rejected value in an invalid-format error.
func riskToken(raw string) string {
	offsets := labelOffsets(raw, LabelRiskLevel)
	if len(offsets) == 0 {
		return ""
	}
	rest := restOfLine(raw, offsets[0])
	if w := leadingWord(rest); w != "" {
		return w
	}
	if f := strings.Fields(rest); len(f) > 0 {
		return f[0]
	}
	return ""
}
