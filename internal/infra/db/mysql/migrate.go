package mysql

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS hair_analyses (
  id                VARCHAR(64)  NOT NULL PRIMARY KEY,
  subject_id        VARCHAR(64)  NOT NULL,
  source_ref        VARCHAR(512) NOT NULL,
  timeline          VARCHAR(32)  NOT NULL,
  current_stage     TEXT         NOT NULL,
  pattern_details   JSON         NOT NULL,
  risk_level        VARCHAR(8)   NOT NULL,
  immediate_actions JSON         NOT NULL,
  medical_options   JSON         NOT NULL,
  lifestyle_changes JSON         NOT NULL,
  created_at        DATETIME(6)  NOT NULL,
  INDEX idx_hair_analyses_subject_created (subject_id, created_at)
) CHARACTER SET utf8mb4`,
	`CREATE TABLE IF NOT EXISTS hair_parse_failures (
  id           BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  subject_id   VARCHAR(64)  NOT NULL,
  source_ref   VARCHAR(512) NOT NULL,
  kind         VARCHAR(64)  NOT NULL,
  message      TEXT         NOT NULL,
  raw_response MEDIUMTEXT   NOT NULL,
  created_at   DATETIME(6)  NOT NULL,
  INDEX idx_hair_parse_failures_subject_created (subject_id, created_at)
) CHARACTER SET utf8mb4`,
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
