package analysis

import (
	"strings"
	"time"
)

// RecordID identifier type
type RecordID string

// RiskLevel enum
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Urgency enum, same literals as RiskLevel
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Labels the analysis prompt asks the model to emit. The prompt and the
// parser change together, so these are not configurable.
const (
	LabelTimeline         = "Timeline"
	LabelCurrentStage     = "Current Stage"
	LabelPatternDetails   = "Pattern Details"
	LabelRiskLevel        = "Risk Level"
	LabelImmediateActions = "Immediate Actions"
	LabelMedicalOptions   = "Medical Options"
	LabelLifestyleChanges = "Lifestyle Changes"

	LabelTitle       = "Title"
	LabelDescription = "Description"
	LabelTimeframe   = "Timeframe"
	LabelUrgency     = "Urgency"

	AreaCrown   = "Crown"
	AreaTemples = "Temples"
	AreaOverall = "Overall"
)

// RequiredAreas must all appear (case-insensitively) in PatternDetails.
var RequiredAreas = [...]string{AreaCrown, AreaTemples, AreaOverall}

// ParseRiskLevel matches the literal exactly; "high" is not High.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(s) {
	case RiskHigh, RiskMedium, RiskLow:
		return RiskLevel(s), true
	}
	return "", false
}

// ParseUrgency matches the literal exactly.
func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(s) {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return Urgency(s), true
	}
	return "", false
}

// PatternDetail is one observation about a scalp region.
type PatternDetail struct {
	Area        string `json:"area"`
	Description string `json:"description"`
}

// ActionDetail is one recommended step inside an action section.
type ActionDetail struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeframe   *string  `json:"timeframe,omitempty"`
	Urgency     *Urgency `json:"urgency,omitempty"`
}

// Record is the validated, assembled result of one model response.
type Record struct {
	ID               RecordID        `json:"id"`
	SubjectID        string          `json:"subject_id"`
	SourceRef        string          `json:"source_ref"`
	Timeline         string          `json:"timeline"`
	CurrentStage     string          `json:"current_stage"`
	PatternDetails   []PatternDetail `json:"pattern_details"`
	RiskLevel        RiskLevel       `json:"risk_level"`
	CreatedAt        time.Time       `json:"created_at"`
	ImmediateActions []ActionDetail  `json:"immediate_actions"`
	MedicalOptions   []ActionDetail  `json:"medical_options"`
	LifestyleChanges []ActionDetail  `json:"lifestyle_changes"`
}

// IsSimilarTo reports whether two records describe effectively the same
// assessment: identical timeline and risk level, and more than 70% of the
// current stage words shared.
func (r *Record) IsSimilarTo(other *Record) bool {
	if r == nil || other == nil {
		return false
	}
	if r.Timeline != other.Timeline || r.RiskLevel != other.RiskLevel {
		return false
	}

	a := wordSet(r.CurrentStage)
	b := wordSet(other.CurrentStage)
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return false
	}
	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	return float64(common)/float64(denom) > 0.7
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data     []*Record `json:"data"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
