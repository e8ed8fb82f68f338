package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t \r\n", ""},
		{"collapses newlines", "Timeline: Age 30\n\nCurrent Stage:  early", "Timeline: Age 30 Current Stage: early"},
		{"doubled age", "Timeline: Age Age 30-35", "Timeline: Age 30-35"},
		{"tripled age across newline", "Timeline: Age\nAge  Age 40", "Timeline: Age 40"},
		{"keeps Agent", "Age Agent", "Age Agent"},
		{"match dump", "Timeline: Match(anyRegexOutput: [x]) Age 30", "Timeline: Age 30"},
		{"index dump", "Age 30..<Swift.String.Index(_rawBits: 15) done", "Age 30 done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDisplay(tt.in))
		})
	}
}

func TestNormalizeRaw_KeepsLines(t *testing.T) {
	in := "  Pattern Details:\r\n  -   Crown:  thinning \r\n\t- Temples: receding\n\n"
	assert.Equal(t, "Pattern Details:\n- Crown: thinning\n- Temples: receding", NormalizeRaw(in))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Timeline: Age Age Age 30",
		"MaMatch(anyRegexOutput: a)tch(anyRegexOutput: b) rest",
		"Age\n\nAge   Age\r\nAge",
		"Current Stage:   Mild\t\tthinning\n- Crown:   x  \n",
		"..<String.Index(x)..<String.Index(y)) tail",
	}
	for _, in := range inputs {
		once := NormalizeDisplay(in)
		assert.Equal(t, once, NormalizeDisplay(once), "display %q", in)
		assert.LessOrEqual(t, len(once), len(in))

		raw := NormalizeRaw(in)
		assert.Equal(t, raw, NormalizeRaw(raw), "raw %q", in)
		assert.LessOrEqual(t, len(raw), len(in))
	}
}

func TestNormalize_NoArtifactsLeft(t *testing.T) {
	out := NormalizeDisplay("x Match(anyRegexOutput: 1) Age Age y")
	assert.NotContains(t, out, "Match(anyRegexOutput:")
	assert.NotContains(t, out, "Age Age")
}
