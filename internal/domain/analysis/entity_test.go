package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRiskLevel(t *testing.T) {
	for _, s := range []string{"High", "Medium", "Low"} {
		lvl, ok := ParseRiskLevel(s)
		assert.True(t, ok)
		assert.Equal(t, RiskLevel(s), lvl)
	}
	for _, s := range []string{"high", "LOW", "", "Severe"} {
		_, ok := ParseRiskLevel(s)
		assert.False(t, ok, s)
	}
}

func TestRecord_IsSimilarTo(t *testing.T) {
	base := &Record{Timeline: "30-35", RiskLevel: RiskLow, CurrentStage: "Mild thinning at the crown"}

	tests := []struct {
		name  string
		other *Record
		want  bool
	}{
		{"identical", &Record{Timeline: "30-35", RiskLevel: RiskLow, CurrentStage: "mild THINNING at the crown"}, true},
		{"one word differs of five", &Record{Timeline: "30-35", RiskLevel: RiskLow, CurrentStage: "Mild thinning at the temples"}, true},
		{"two words differ", &Record{Timeline: "30-35", RiskLevel: RiskLow, CurrentStage: "Mild recession at the temples"}, false},
		{"timeline differs", &Record{Timeline: "40", RiskLevel: RiskLow, CurrentStage: base.CurrentStage}, false},
		{"risk differs", &Record{Timeline: "30-35", RiskLevel: RiskHigh, CurrentStage: base.CurrentStage}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.IsSimilarTo(tt.other))
		})
	}
}
