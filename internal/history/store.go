// Package history persists answer-usage tracking: which answers the user
// accepted or edited, reported by the extension after filling a form.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Entry is one tracked answer usage.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Source    string    `json:"source"`
	WasEdited bool      `json:"was_edited"`
	JobURL    string    `json:"job_url,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	Company   string    `json:"company,omitempty"`
}

// Store keeps tracked answers in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database and configures WAL mode.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "history: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS tracked_answers (
	id         TEXT PRIMARY KEY,
	tracked_at TEXT NOT NULL,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	source     TEXT NOT NULL,
	was_edited INTEGER NOT NULL DEFAULT 0,
	job_url    TEXT NOT NULL DEFAULT '',
	job_title  TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tracked_answers_tracked_at ON tracked_answers(tracked_at);
`

// Migrate creates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "history: migrate")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Track inserts one entry, assigning an id and timestamp when absent, and
// returns the stored entry.
func (s *Store) Track(ctx context.Context, e Entry) (*Entry, error) {
	if e.Question == "" || e.Answer == "" || e.Source == "" {
		return nil, eris.New("history: question, answer and source are required")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tracked_answers
			(id, tracked_at, question, answer, source, was_edited, job_url, job_title, company)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.Format(time.RFC3339Nano), e.Question, e.Answer, e.Source,
		e.WasEdited, e.JobURL, e.JobTitle, e.Company,
	)
	if err != nil {
		return nil, eris.Wrap(err, "history: insert entry")
	}
	return &e, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// defaults to 100.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tracked_at, question, answer, source, was_edited, job_url, job_title, company
		 FROM tracked_answers
		 ORDER BY tracked_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "history: list entries")
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var trackedAt string
		if err := rows.Scan(&e.ID, &trackedAt, &e.Question, &e.Answer, &e.Source,
			&e.WasEdited, &e.JobURL, &e.JobTitle, &e.Company); err != nil {
			return nil, eris.Wrap(err, "history: scan entry")
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, trackedAt)
		if err != nil {
			return nil, eris.Wrapf(err, "history: parse timestamp %q", trackedAt)
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "history: iterate entries")
}

// Count returns the total number of entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracked_answers`).Scan(&n)
	return n, eris.Wrap(err, "history: count entries")
}

// Prune deletes all but the most recent keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return eris.New("history: keep must be positive")
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracked_answers WHERE id NOT IN (
			SELECT id FROM tracked_answers ORDER BY tracked_at DESC, rowid DESC LIMIT ?
		)`, keep)
	return eris.Wrap(err, "history: prune entries")
}
