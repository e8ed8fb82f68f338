package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a response was rejected.
type ErrorKind string

const (
	KindEmptyResponse         ErrorKind = "empty_response"
	KindMissingRequiredField  ErrorKind = "missing_required_field"
	KindMissingPatternDetails ErrorKind = "missing_pattern_details"
	KindInvalidFormat         ErrorKind = "invalid_format"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its kind.
var (
	ErrEmptyResponse         = &Error{Kind: KindEmptyResponse}
	ErrMissingRequiredField  = &Error{Kind: KindMissingRequiredField}
	ErrMissingPatternDetails = &Error{Kind: KindMissingPatternDetails}
	ErrInvalidFormat         = &Error{Kind: KindInvalidFormat}
)

// Error is returned by Validate and Parse.
type Error struct {
	Kind ErrorKind
	// Field is the missing scalar field for KindMissingRequiredField.
	Field string
	// Missing lists absent required areas for KindMissingPatternDetails.
	Missing []string
	// Token is the rejected value for KindInvalidFormat, empty when the
	// label itself was absent.
	Token string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyResponse:
		return "analysis: empty response"
	case KindMissingRequiredField:
		if e.Field != "" {
			return fmt.Sprintf("analysis: missing required field %q", e.Field)
		}
		return "analysis: missing required field"
	case KindMissingPatternDetails:
		if len(e.Missing) > 0 {
			return "analysis: missing pattern details: " + strings.Join(e.Missing, ", ")
		}
		return "analysis: missing pattern details"
	case KindInvalidFormat:
		if e.Field != "" && e.Token != "" {
			return fmt.Sprintf("analysis: invalid format for %q: got %q", e.Field, e.Token)
		}
		if e.Field != "" {
			return fmt.Sprintf("analysis: invalid format for %q", e.Field)
		}
		return "analysis: invalid format"
	default:
		return "analysis: " + string(e.Kind)
	}
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of an *Error anywhere in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
