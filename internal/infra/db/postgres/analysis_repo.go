package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/hairscan/internal/domain/analysis"
	"github.com/bryanwahyu/hairscan/internal/infra/db"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, subject_id, source_ref, timeline, current_stage, pattern_details, risk_level,
       immediate_actions, medical_options, lifestyle_changes, created_at`

// Save inserts an analysis record. Records are never updated.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO hair_analyses
  (id, subject_id, source_ref, timeline, current_stage, pattern_details, risk_level,
   immediate_actions, medical_options, lifestyle_changes, created_at)
VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7,$8::jsonb,$9::jsonb,$10::jsonb,$11);
`
	cols, err := db.EncodeLists(a)
	if err != nil {
		return err
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, q,
		string(a.ID), stringOrDash(a.SubjectID), stringOrDash(a.SourceRef), a.Timeline, a.CurrentStage,
		cols.PatternDetails, string(a.RiskLevel),
		cols.ImmediateActions, cols.MedicalOptions, cols.LifestyleChanges, createdAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("analysis %s already stored: %w", a.ID, err)
	}
	return err
}

// Get by ID + subject
func (r *AnalysisRepository) Get(ctx context.Context, subject string, id domain.RecordID) (*domain.Record, error) {
	q := `SELECT ` + analysisColumns + `
FROM hair_analyses
WHERE subject_id=$1 AND id=$2;`
	return scanRecord(r.db.QueryRowContext(ctx, q, subject, string(id)))
}

// Latest returns the newest record of a subject, or nil when there is none
func (r *AnalysisRepository) Latest(ctx context.Context, subject string) (*domain.Record, error) {
	q := `SELECT ` + analysisColumns + `
FROM hair_analyses
WHERE subject_id=$1
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	a, err := scanRecord(r.db.QueryRowContext(ctx, q, subject))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, subject string, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := `SELECT ` + analysisColumns + `
FROM hair_analyses
WHERE subject_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;`
	rows, err := r.db.QueryContext(ctx, q, subject, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		a, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes one record; a missing record yields sql.ErrNoRows
func (r *AnalysisRepository) Delete(ctx context.Context, subject string, id domain.RecordID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hair_analyses WHERE subject_id=$1 AND id=$2;`, subject, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		a    domain.Record
		id   string
		risk string
		cols db.ListColumns
	)
	if err := row.Scan(&id, &a.SubjectID, &a.SourceRef, &a.Timeline, &a.CurrentStage,
		&cols.PatternDetails, &risk,
		&cols.ImmediateActions, &cols.MedicalOptions, &cols.LifestyleChanges, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.ID = domain.RecordID(id)
	a.RiskLevel = domain.RiskLevel(risk)
	a.CreatedAt = a.CreatedAt.UTC()
	if err := db.DecodeLists(cols, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
