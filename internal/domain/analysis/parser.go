package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Parser turns a model response into a Record. The zero value is ready to
// use; NewID and Now exist so tests can pin ids and timestamps. A Parser
// holds no state between calls and is safe for concurrent use.
type Parser struct {
	NewID func() string
	Now   func() time.Time
}

// Parse runs normalize → extract → validate → assemble. subjectID and
// sourceRef are copied to the record untouched.
func (p Parser) Parse(raw, subjectID, sourceRef string) (*Record, error) {
	v, err := Validate(Extract(Normalize(raw)))
	if err != nil {
		return nil, err
	}
	return p.Assemble(v, subjectID, sourceRef), nil
}

// Assemble builds the record from validated fields. It cannot fail.
func (p Parser) Assemble(v Validated, subjectID, sourceRef string) *Record {
	newID := p.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	return &Record{
		ID:               RecordID(newID()),
		SubjectID:        subjectID,
		SourceRef:        sourceRef,
		Timeline:         v.Timeline,
		CurrentStage:     v.CurrentStage,
		PatternDetails:   append([]PatternDetail{}, v.PatternDetails...),
		RiskLevel:        v.RiskLevel,
		CreatedAt:        now().UTC(),
		ImmediateActions: append([]ActionDetail{}, v.ImmediateActions...),
		MedicalOptions:   append([]ActionDetail{}, v.MedicalOptions...),
		LifestyleChanges: append([]ActionDetail{}, v.LifestyleChanges...),
	}
}

// Parse uses a zero Parser.
func Parse(raw, subjectID, sourceRef string) (*Record, error) {
	return Parser{}.Parse(raw, subjectID, sourceRef)
}
