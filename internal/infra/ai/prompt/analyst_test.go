package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/hairscan/internal/domain/analysis"
)

func TestGetUserPrompt_ContainsEveryLabel(t *testing.T) {
	p := GetUserPrompt()
	for _, label := range []string{
		analysis.LabelTimeline, analysis.LabelCurrentStage, analysis.LabelPatternDetails,
		analysis.LabelRiskLevel, analysis.LabelImmediateActions, analysis.LabelMedicalOptions,
		analysis.LabelLifestyleChanges,
	} {
		assert.Contains(t, p, label+":")
	}
	assert.Equal(t, 3, strings.Count(p, "- Title:"))
	assert.NotEmpty(t, GetSystemPrompt())
}

// A model that copies the template verbatim fails validation on the
// placeholder risk level, never on structure.
func TestGetUserPrompt_TemplateShapeParses(t *testing.T) {
	text := analysis.Normalize(GetUserPrompt())
	x := analysis.Extract(text)

	assert.Len(t, x.PatternDetails, 3)
	require.Len(t, x.ImmediateActions, 1)
	assert.Equal(t, "[short action title]", x.ImmediateActions[0].Title)
	assert.Len(t, x.MedicalOptions, 1)
	assert.Len(t, x.LifestyleChanges, 1)

	_, err := analysis.Validate(x)
	assert.ErrorIs(t, err, analysis.ErrMissingRequiredField)
}
