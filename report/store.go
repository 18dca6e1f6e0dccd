package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tapscan/tapscan/dbopen"
)

// Schema is the SQLite schema for audit run history. Exposed so callers
// opening their own handle with dbopen can apply it.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_runs (
	run_id        TEXT PRIMARY KEY,
	url           TEXT NOT NULL,
	created_at    INTEGER NOT NULL,
	target_count  INTEGER NOT NULL,
	finding_count INTEGER NOT NULL,
	report_json   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_targets (
	run_id   TEXT NOT NULL REFERENCES audit_runs(run_id) ON DELETE CASCADE,
	idx      INTEGER NOT NULL,
	selector TEXT NOT NULL,
	path     TEXT NOT NULL,
	href     TEXT NOT NULL DEFAULT '',
	snippet  TEXT NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_audit_runs_created ON audit_runs(created_at DESC);
`

// ErrNotFound is returned by Get when no run has the given ID.
var ErrNotFound = errors.New("report: run not found")

// Store persists Reports in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already-opened database. The schema must be applied.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens (or creates) the SQLite database at path with the
// audit schema applied.
func OpenStore(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("report: open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a report and its targets in one transaction.
func (s *Store) Save(ctx context.Context, r *Report) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: save %s: marshal: %w", r.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report: save %s: begin: %w", r.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_runs (run_id, url, created_at, target_count, finding_count, report_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.URL, r.CreatedAt, r.TargetCount, r.FindingCount, string(raw))
	if err != nil {
		return fmt.Errorf("report: save %s: insert run: %w", r.ID, err)
	}

	for i, t := range r.Targets {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO audit_targets (run_id, idx, selector, path, href, snippet)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i, t.Selector, t.Path, t.Href, t.Snippet)
		if err != nil {
			return fmt.Errorf("report: save %s: insert target %d: %w", r.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report: save %s: commit: %w", r.ID, err)
	}
	return nil
}

// Get loads a report by run ID.
func (s *Store) Get(ctx context.Context, id string) (*Report, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM audit_runs WHERE run_id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("report: get %s: %w", id, err)
	}

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("report: get %s: unmarshal: %w", id, err)
	}
	return &r, nil
}

// RunSummary is one row of run history.
type RunSummary struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	CreatedAt    int64  `json:"created_at"`
	TargetCount  int    `json:"target_count"`
	FindingCount int    `json:"finding_count"`
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, url, created_at, target_count, finding_count
		 FROM audit_runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("report: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(&rs.ID, &rs.URL, &rs.CreatedAt, &rs.TargetCount, &rs.FindingCount); err != nil {
			return nil, fmt.Errorf("report: list runs: scan: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: list runs: %w", err)
	}
	return out, nil
}
