package mysql

import "strings"

// stringOrDash returns "-" when the input is empty/whitespace; the text
// columns are NOT NULL and an empty subject or ref should still be visible.
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
