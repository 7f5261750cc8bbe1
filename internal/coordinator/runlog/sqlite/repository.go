// Package sqlite stores the run log in a SQLite file.
//
// The database is opened in WAL mode: the workflow appends rows while the HTTP
// status endpoint reads them.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"

	// Pure-Go driver, registered as "sqlite". No CGO needed.
	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z"

const schema = `
CREATE TABLE IF NOT EXISTS run_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          TEXT        NOT NULL,
    status          TEXT        NOT NULL,
    stage           TEXT        NOT NULL DEFAULT '',
    -- request JSON, written on STARTED only
    payload         TEXT,
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_logs_run_id ON run_logs(run_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_run_logs_trace_id ON run_logs(trace_id);
`

// Repository implements runlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ runlog.Repository = (*Repository)(nil)

// Open opens or creates the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/runs.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends an entry. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *runlog.Entry) error {
	const q = `
		INSERT INTO run_logs
			(run_id, status, stage, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.RunID,
		string(entry.Status),
		entry.Stage,
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save run log for %q: %w", entry.RunID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for runID, or runlog.ErrNotFound.
func (r *Repository) GetLatest(ctx context.Context, runID string) (*runlog.Entry, error) {
	const q = `
		SELECT run_id, status, stage, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   run_logs
		WHERE  run_id = ?
		ORDER  BY id DESC
		LIMIT  1`

	var (
		entry     runlog.Entry
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, q, runID).Scan(
		&entry.RunID,
		&entry.Status,
		&entry.Stage,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, runlog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", runID, err)
	}

	entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse time %q: %w", updatedAt, err)
	}
	return &entry, nil
}

// nullableString stores NULL instead of an empty payload.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
