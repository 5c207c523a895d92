// Package history keeps a per-project record of analysis runs in a
// local sqlite file so successive runs can report trend deltas. It
// lives outside the analysis core; run ids and timestamps never appear
// in the core's deterministic result.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"codescope/internal/analyzer"
)

const driverName = "sqlite"

// Run is one recorded analysis.
type Run struct {
	RunID          string
	ProjectKey     string
	Timestamp      time.Time
	Units          int
	Entities       int
	Imports        int
	Cycles         int
	OverallScore   float64
	Grade          string
	PrimaryPattern string
}

// Delta compares a run against the one before it.
type Delta struct {
	ScoreChange  float64
	CycleChange  int
	EntityChange int
	Previous     *Run
}

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}
	if dir := filepath.Dir(cleanPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema %q: %w", cleanPath, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a run summary and returns the run together with the
// delta against the previous run for the same project key.
func (s *Store) Record(projectKey string, res *analyzer.Result) (Run, *Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}

	prev, err := s.lastRun(projectKey)
	if err != nil {
		return Run{}, nil, err
	}

	run := Run{
		RunID:          uuid.NewString(),
		ProjectKey:     projectKey,
		Timestamp:      time.Now().UTC(),
		Units:          res.Summary.Units,
		Entities:       res.Summary.Entities,
		Imports:        res.Summary.Imports,
		Cycles:         res.Summary.Cycles,
		OverallScore:   res.Summary.OverallScore,
		Grade:          res.Summary.Grade,
		PrimaryPattern: res.Summary.PrimaryPattern,
	}

	_, err = s.db.Exec(`
INSERT INTO runs (run_id, project_key, ts_utc, unit_count, entity_count, import_count, cycle_count, overall_score, grade, primary_pattern)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ProjectKey, run.Timestamp.Format(time.RFC3339Nano),
		run.Units, run.Entities, run.Imports, run.Cycles,
		run.OverallScore, run.Grade, run.PrimaryPattern)
	if err != nil {
		return Run{}, nil, fmt.Errorf("insert run: %w", err)
	}

	if prev == nil {
		return run, nil, nil
	}
	return run, &Delta{
		ScoreChange:  run.OverallScore - prev.OverallScore,
		CycleChange:  run.Cycles - prev.Cycles,
		EntityChange: run.Entities - prev.Entities,
		Previous:     prev,
	}, nil
}

// Recent returns up to limit runs for the project, newest first.
func (s *Store) Recent(projectKey string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
SELECT run_id, project_key, ts_utc, unit_count, entity_count, import_count, cycle_count, overall_score, grade, primary_pattern
FROM runs WHERE project_key = ? ORDER BY ts_utc DESC LIMIT ?`, projectKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) lastRun(projectKey string) (*Run, error) {
	row := s.db.QueryRow(`
SELECT run_id, project_key, ts_utc, unit_count, entity_count, import_count, cycle_count, overall_score, grade, primary_pattern
FROM runs WHERE project_key = ? ORDER BY ts_utc DESC LIMIT 1`, projectKey)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var ts string
	err := row.Scan(&r.RunID, &r.ProjectKey, &ts, &r.Units, &r.Entities, &r.Imports,
		&r.Cycles, &r.OverallScore, &r.Grade, &r.PrimaryPattern)
	if err != nil {
		return Run{}, err
	}
	if parsed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
		r.Timestamp = parsed
	}
	return r, nil
}
