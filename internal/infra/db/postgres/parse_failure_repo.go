package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/hairscan/internal/domain/parsefailures"
)

type ParseFailureRepository struct {
	db *sql.DB
}

func NewParseFailureRepository(db *sql.DB) *ParseFailureRepository {
	return &ParseFailureRepository{db: db}
}

func (r *ParseFailureRepository) Save(ctx context.Context, f *domain.ParseFailure) error {
	const q = `
INSERT INTO hair_parse_failures
  (subject_id, source_ref, kind, message, raw_response, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, q,
		stringOrDash(f.SubjectID), stringOrDash(f.SourceRef), stringOrDash(f.Kind), msg, f.RawResponse, created,
	).Scan(&f.ID)
}

func (r *ParseFailureRepository) ListBySubject(ctx context.Context, subject string, limit int) ([]*domain.ParseFailure, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, subject_id, source_ref, kind, message, raw_response, created_at
FROM hair_parse_failures
WHERE subject_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.ParseFailure{}
	for rows.Next() {
		var f domain.ParseFailure
		if err := rows.Scan(&f.ID, &f.SubjectID, &f.SourceRef, &f.Kind, &f.Message, &f.RawResponse, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
