package prompt

import (
	"fmt"

	"github.com/bryanwahyu/hairscan/internal/domain/analysis"
)

// GetSystemPrompt sets the assistant's tone. The response layout itself is in
// GetUserPrompt because providers weigh the user turn more for formatting.
func GetSystemPrompt() string {
	return `You are a supportive hair analysis assistant helping people understand and track their hair health journey. Our goal is to help users take proactive steps towards maintaining their hair health by providing educational insights and encouraging them to seek professional care when needed. Answer in plain text, never JSON or markdown tables.`
}

// GetUserPrompt returns the fixed template the parser in domain/analysis
// understands. Labels come from the same constants the parser matches.
func GetUserPrompt() string {
	return fmt.Sprintf(`Please analyze this hair image to help provide the user with a constructive assessment in exactly this format:

%[1]s: Age [estimated age for potential changes, being conservative and optimistic]

%[2]s: [supportive description of current visible patterns, focusing on opportunities for improvement]

%[3]s:
- %[4]s: [objective description of crown area]
- %[5]s: [objective description of temple area]
- %[6]s: [balanced description of general hair health]

%[7]s: [High/Medium/Low] based on visible patterns, erring on the side of early awareness

For subscribers, provide constructive action steps:

%[8]s:
%[11]s

%[9]s:
%[11]s

%[10]s:
%[11]s

Note: This analysis is meant to empower users with information while encouraging proper medical consultation. The goal is early awareness and proactive care.`,
		analysis.LabelTimeline,
		analysis.LabelCurrentStage,
		analysis.LabelPatternDetails,
		analysis.AreaCrown,
		analysis.AreaTemples,
		analysis.AreaOverall,
		analysis.LabelRiskLevel,
		analysis.LabelImmediateActions,
		analysis.LabelMedicalOptions,
		analysis.LabelLifestyleChanges,
		actionTemplate(),
	)
}

func actionTemplate() string {
	return fmt.Sprintf(`- %s: [short action title]
  %s: [supportive explanation]
  %s: [realistic timeline]
  %s: [High/Medium/Low]`,
		analysis.LabelTitle,
		analysis.LabelDescription,
		analysis.LabelTimeframe,
		analysis.LabelUrgency,
	)
}
