package parsefailures

import "time"

// ParseFailure records a model response that the analysis parser rejected
type ParseFailure struct {
	ID          int64     `json:"id"`
	SubjectID   string    `json:"subject_id"`
	SourceRef   string    `json:"source_ref,omitempty"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	RawResponse string    `json:"raw_response,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
