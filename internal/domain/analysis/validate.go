package analysis

import "strings"

// Extracted is the raw output of every extractor for one response. Empty
// values mean the extractor found nothing.
type Extracted struct {
	Display        string
	Timeline       string
	CurrentStage   string
	PatternDetails []PatternDetail
	RiskLevel      RiskLevel
	// RiskToken is the raw word after the first Risk Level label.
	RiskToken        string
	ImmediateActions []ActionDetail
	MedicalOptions   []ActionDetail
	LifestyleChanges []ActionDetail
}

// Validated holds fields that passed Validate.
type Validated struct {
	Timeline         string
	CurrentStage     string
	PatternDetails   []PatternDetail
	RiskLevel        RiskLevel
	ImmediateActions []ActionDetail
	MedicalOptions   []ActionDetail
	LifestyleChanges []ActionDetail
}

// Extract runs every extractor against the variant of text it reads.
// Extractors are independent of each other.
func Extract(text Text) Extracted {
	timeline, _ := ExtractTimeline(text.Display)
	stage, _ := ExtractCurrentStage(text.Raw)
	risk, _ := ExtractRiskLevel(text.Raw)
	return Extracted{
		Display:          text.Display,
		Timeline:         timeline,
		CurrentStage:     stage,
		PatternDetails:   ExtractPatternDetails(text.Raw),
		RiskLevel:        risk,
		RiskToken:        riskToken(text.Raw),
		ImmediateActions: ExtractImmediateActions(text.Raw),
		MedicalOptions:   ExtractMedicalOptions(text.Raw),
		LifestyleChanges: ExtractLifestyleChanges(text.Raw),
	}
}

// Validate checks the invariants in a fixed order and returns the first one
// violated. Callers rely on that order.
func Validate(x Extracted) (Validated, error) {
	if strings.TrimSpace(x.Display) == "" {
		return Validated{}, &Error{Kind: KindEmptyResponse}
	}
	if x.Timeline == "" {
		return Validated{}, &Error{Kind: KindMissingRequiredField, Field: "timeline"}
	}
	if strings.TrimSpace(x.CurrentStage) == "" {
		return Validated{}, &Error{Kind: KindMissingRequiredField, Field: "current_stage"}
	}
	if missing := missingAreas(x.PatternDetails); len(missing) > 0 {
		return Validated{}, &Error{Kind: KindMissingPatternDetails, Missing: missing}
	}
	if _, ok := ParseRiskLevel(string(x.RiskLevel)); !ok {
		return Validated{}, &Error{Kind: KindInvalidFormat, Field: "risk_level", Token: x.RiskToken}
	}

	return Validated{
		Timeline:         x.Timeline,
		CurrentStage:     x.CurrentStage,
		PatternDetails:   x.PatternDetails,
		RiskLevel:        x.RiskLevel,
		ImmediateActions: x.ImmediateActions,
		MedicalOptions:   x.MedicalOptions,
		LifestyleChanges: x.LifestyleChanges,
	}, nil
}

func missingAreas(details []PatternDetail) []string {
	var missing []string
	for _, want := range RequiredAreas {
		found := false
		for _, d := range details {
			if strings.EqualFold(d.Area, want) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}
