// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index records batch runs and their per-document outcomes in a
// SQLite database. Recording is opt-in: without it the tool leaves no state
// behind beyond the annotated output files.
package index

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

const dbFile = "highlights.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dir/highlights.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			source_dir TEXT NOT NULL,
			dest_dir TEXT,
			keywords TEXT NOT NULL,
			files INTEGER NOT NULL,
			hits INTEGER,
			failed INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			dest TEXT,
			hits INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a run row and returns its id.
func (s *Store) BeginRun(source, dest string, keywords []string, files int) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, source_dir, dest_dir, keywords, files)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		source, dest, strings.Join(keywords, ","), files,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// RecordResult inserts one per-document outcome for a run.
func (s *Store) RecordResult(runID int64, r types.Result) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (run_id, source, dest, hits, status, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, r.Source, r.Dest, r.Hits, string(r.Status), r.Err,
	)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", r.Source, err)
	}
	return nil
}

// FinishRun stamps the run's completion time and totals.
func (s *Store) FinishRun(runID int64, hits, failed int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, hits = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), hits, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", runID, err)
	}
	return nil
}

// Run is one recorded batch run.
type Run struct {
	ID        int64
	StartedAt string
	Source    string
	Dest      string
	Keywords  string
	Files     int
	Hits      int
	Failed    int
}

// Runs returns the most recent runs, newest first, up to limit.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, source_dir, dest_dir, keywords, files,
		        COALESCE(hits, 0), COALESCE(failed, 0)
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Source, &r.Dest,
			&r.Keywords, &r.Files, &r.Hits, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Documents returns the per-document outcomes of one run, in processing order.
func (s *Store) Documents(runID int64) ([]types.Result, error) {
	rows, err := s.db.Query(
		`SELECT source, COALESCE(dest, ''), hits, status, COALESCE(error, '')
		 FROM documents WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var results []types.Result
	for rows.Next() {
		var r types.Result
		var status string
		if err := rows.Scan(&r.Source, &r.Dest, &r.Hits, &status, &r.Err); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		r.Status = types.Status(status)
		results = append(results, r)
	}
	return results, rows.Err()
}

// List prints recent runs to w, one line per run.
func (s *Store) List(w io.Writer, limit int) error {
	runs, err := s.Runs(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no recorded runs")
		return nil
	}
	for _, r := range runs {
		dest := r.Dest
		if dest == "" {
			dest = "(in place)"
		}
		fmt.Fprintf(w, "run %d  %s  %s -> %s  %d file(s), %d hit(s), %d failed  [%s]\n",
			r.ID, r.StartedAt, r.Source, dest, r.Files, r.Hits, r.Failed, r.Keywords)
	}
	return nil
}
