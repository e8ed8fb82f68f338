// Package db holds what the mysql and postgres repositories share.
package db

import (
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/hairscan/internal/domain/analysis"
)

// ListColumns are the JSON-encoded list fields of an analysis row.
type ListColumns struct {
	PatternDetails   string
	ImmediateActions string
	MedicalOptions   string
	LifestyleChanges string
}

// EncodeLists marshals the record's lists. nil lists are stored as "[]" so the
// columns never hold JSON null.
func EncodeLists(r *analysis.Record) (ListColumns, error) {
	var (
		out ListColumns
		err error
	)
	if out.PatternDetails, err = encode(r.PatternDetails); err != nil {
		return out, fmt.Errorf("encode pattern_details: %w", err)
	}
	if out.ImmediateActions, err = encodeActions(r.ImmediateActions); err != nil {
		return out, fmt.Errorf("encode immediate_actions: %w", err)
	}
	if out.MedicalOptions, err = encodeActions(r.MedicalOptions); err != nil {
		return out, fmt.Errorf("encode medical_options: %w", err)
	}
	if out.LifestyleChanges, err = encodeActions(r.LifestyleChanges); err != nil {
		return out, fmt.Errorf("encode lifestyle_changes: %w", err)
	}
	return out, nil
}

// DecodeLists fills the record's lists from stored columns.
func DecodeLists(c ListColumns, r *analysis.Record) error {
	r.PatternDetails = []analysis.PatternDetail{}
	if err := decode(c.PatternDetails, &r.PatternDetails); err != nil {
		return fmt.Errorf("decode pattern_details: %w", err)
	}
	for _, col := range []struct {
		raw string
		dst *[]analysis.ActionDetail
	}{
		{c.ImmediateActions, &r.ImmediateActions},
		{c.MedicalOptions, &r.MedicalOptions},
		{c.LifestyleChanges, &r.LifestyleChanges},
	} {
		*col.dst = []analysis.ActionDetail{}
		if err := decode(col.raw, col.dst); err != nil {
			return fmt.Errorf("decode actions: %w", err)
		}
	}
	return nil
}

func encode(v []analysis.PatternDetail) (string, error) {
	if v == nil {
		v = []analysis.PatternDetail{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func encodeActions(v []analysis.ActionDetail) (string, error) {
	if v == nil {
		v = []analysis.ActionDetail{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func decode(raw string, dst any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
