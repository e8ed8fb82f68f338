package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPatternDetails(t *testing.T) {
	raw := NormalizeRaw(`Current Stage: early
Pattern Details:

- Crown: slight thinning: diffuse
- Temples: minor recession
- no colon here
- : orphan description
- Overall: healthy density

Risk Level: Low`)

	got := ExtractPatternDetails(raw)
	require.Len(t, got, 3)
	assert.Equal(t, PatternDetail{Area: "Crown", Description: "slight thinning: diffuse"}, got[0])
	assert.Equal(t, PatternDetail{Area: "Temples", Description: "minor recession"}, got[1])
	assert.Equal(t, PatternDetail{Area: "Overall", Description: "healthy density"}, got[2])
}

func TestExtractPatternDetails_StopsAtNonBullet(t *testing.T) {
	raw := "Pattern Details:\n- Crown: a\nsome prose\n- Temples: b"
	got := ExtractPatternDetails(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Crown", got[0].Area)
}

func TestExtractPatternDetails_Absent(t *testing.T) {
	assert.Empty(t, ExtractPatternDetails("Timeline: Age 30"))
	assert.Empty(t, ExtractPatternDetails("Pattern Details:\nRisk Level: Low"))
}

func TestExtractActions(t *testing.T) {
	raw := NormalizeRaw(`Immediate Actions:
- Title: Gentle shampoo
  Description: Switch to a sulfate-free shampoo
  Timeframe: This week
  Urgency: High

- Title: Scalp massage
  Description: Five minutes daily
  Urgency: urgent

Medical Options:
- Title: Dermatologist visit
  Description: Get a professional assessment
  Timeframe: Within 3 months
  Urgency: Medium
Lifestyle Changes:
- Title: Sleep
  Description: Aim for eight hours
  Timeframe: Ongoing
  Urgency: Low
- Title: Diet
  Description: More protein
`)

	immediate := ExtractImmediateActions(raw)
	require.Len(t, immediate, 2)
	assert.Equal(t, "Gentle shampoo", immediate[0].Title)
	assert.Equal(t, "Switch to a sulfate-free shampoo", immediate[0].Description)
	require.NotNil(t, immediate[0].Timeframe)
	assert.Equal(t, "This week", *immediate[0].Timeframe)
	require.NotNil(t, immediate[0].Urgency)
	assert.Equal(t, UrgencyHigh, *immediate[0].Urgency)

	assert.Equal(t, "Scalp massage", immediate[1].Title)
	assert.Nil(t, immediate[1].Timeframe)
	assert.Nil(t, immediate[1].Urgency, "unknown urgency degrades to absent")

	medical := ExtractMedicalOptions(raw)
	require.Len(t, medical, 1)
	assert.Equal(t, "Dermatologist visit", medical[0].Title)

	lifestyle := ExtractLifestyleChanges(raw)
	require.Len(t, lifestyle, 2)
	assert.Equal(t, "Sleep", lifestyle[0].Title)
	assert.Equal(t, "Diet", lifestyle[1].Title)
	assert.Nil(t, lifestyle[1].Urgency)
}

func TestExtractActions_DropsIncompleteRecords(t *testing.T) {
	raw := NormalizeRaw("Immediate Actions:\n- Title: Rest\nDescription: \nTimeframe: soon\n- Title: Hydrate\nDescription: Drink water\n- Title:\nDescription: no title")

	got := ExtractImmediateActions(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Hydrate", got[0].Title)
	assert.Equal(t, "Drink water", got[0].Description)
}

func TestExtractActions_OnlyIncomplete(t *testing.T) {
	raw := NormalizeRaw("Immediate Actions:\n- Title: Rest\nDescription: \nTimeframe: soon")
	assert.Empty(t, ExtractImmediateActions(raw))
}

func TestExtractActions_BulletedSubFields(t *testing.T) {
	raw := "Medical Options:\n- Title: Minoxidil\n- Description: Topical solution\n- Urgency: Medium"
	got := ExtractMedicalOptions(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Topical solution", got[0].Description)
	require.NotNil(t, got[0].Urgency)
	assert.Equal(t, UrgencyMedium, *got[0].Urgency)
}

func TestExtractBlocks_CustomSchema(t *testing.T) {
	got := ExtractBlocks[PatternDetail]("Notes: - Crown: x\n- Back: y", "Notes", AreaSchema{})
	require.Len(t, got, 2)
	assert.Equal(t, "Back", got[1].Area)
}

func TestExtractBlocks_IgnoresLabelMidLine(t *testing.T) {
	raw := "Current Stage: see Pattern Details: below\nPattern Details:\n- Crown: a\n- Temples: b\n- Overall: c"
	got := ExtractPatternDetails(raw)
	require.Len(t, got, 3)
	assert.Equal(t, "Crown", got[0].Area)
}

func TestExtractBlocks_SkipsEmptyOccurrence(t *testing.T) {
	raw := "Immediate Actions: none listed here\nNote: text\n\nImmediate Actions:\n- Title: Rest\nDescription: Sleep more"
	got := ExtractImmediateActions(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Rest", got[0].Title)
}
