package postgres

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS hair_analyses (
  id                TEXT        PRIMARY KEY,
  subject_id        TEXT        NOT NULL,
  source_ref        TEXT        NOT NULL,
  timeline          TEXT        NOT NULL,
  current_stage     TEXT        NOT NULL,
  pattern_details   JSONB       NOT NULL,
  risk_level        TEXT        NOT NULL CHECK (risk_level IN ('High','Medium','Low')),
  immediate_actions JSONB       NOT NULL,
  medical_options   JSONB       NOT NULL,
  lifestyle_changes JSONB       NOT NULL,
  created_at        TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_hair_analyses_subject_created ON hair_analyses (subject_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS hair_parse_failures (
  id           BIGSERIAL   PRIMARY KEY,
  subject_id   TEXT        NOT NULL,
  source_ref   TEXT        NOT NULL,
  kind         TEXT        NOT NULL,
  message      TEXT        NOT NULL,
  raw_response TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_hair_parse_failures_subject_created ON hair_parse_failures (subject_id, created_at DESC)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
