package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anonsurvey/domain/core"
	"anonsurvey/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// runStore implements the RunStore interface on postgres
type runStore struct {
	db *sqlx.DB
}

// NewRunStore creates a new run archive backed by the given connection.
func NewRunStore(db *sqlx.DB) ports.RunStore {
	return &runStore{db: db}
}

// Connect opens a postgres connection for the run archive.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to run archive: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the runs table when absent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS survey_runs (
		id TEXT PRIMARY KEY,
		folder TEXT NOT NULL,
		pre_file TEXT NOT NULL,
		post_file TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure run archive schema: %w", err)
	}
	return nil
}

// SaveRun archives one completed analysis run.
func (s *runStore) SaveRun(ctx context.Context, record ports.RunRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO survey_runs (id, folder, pre_file, post_file, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query,
		record.ID.String(), record.Folder, record.PreFile, record.PostFile,
		record.Payload, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.ID, err)
	}
	return nil
}

// GetRun retrieves one archived run by its ID.
func (s *runStore) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	query := `SELECT id, folder, pre_file, post_file, payload, created_at
		FROM survey_runs WHERE id = $1`

	var record ports.RunRecord
	err := s.db.GetContext(ctx, &record, query, id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return &record, nil
}

// ListRuns returns archived runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, folder, pre_file, post_file, payload, created_at
		FROM survey_runs ORDER BY created_at DESC LIMIT $1`

	var records []ports.RunRecord
	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}
