// Package persistence provides SQLite-based storage for solver runs.
// The core engine never touches it; callers (CLI, API) decide what to
// keep.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/avandyck/symbiont/internal/solver"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		scenario TEXT NOT NULL,
		variant TEXT NOT NULL,
		pick INTEGER NOT NULL,
		max_solutions INTEGER NOT NULL,
		allow_reuse INTEGER NOT NULL,
		enumerated INTEGER NOT NULL,
		checker_passed INTEGER NOT NULL,
		simulated INTEGER NOT NULL,
		accepted INTEGER NOT NULL,
		solutions_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one persisted solve invocation with its accepted solutions.
type Run struct {
	ID            string    `db:"id" json:"id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Scenario      string    `db:"scenario" json:"scenario"`
	Variant       string    `db:"variant" json:"variant"`
	Pick          int       `db:"pick" json:"pick"`
	MaxSolutions  int       `db:"max_solutions" json:"max_solutions"`
	AllowReuse    bool      `db:"allow_reuse" json:"allow_reuse"`
	Enumerated    int       `db:"enumerated" json:"enumerated"`
	CheckerPassed int       `db:"checker_passed" json:"checker_passed"`
	Simulated     int       `db:"simulated" json:"simulated"`
	Accepted      int       `db:"accepted" json:"accepted"`

	// Solutions for ecosystem/single-site runs, Assignments for
	// multi-site runs; both serialized into solutions_json.
	Solutions   []solver.Solution   `db:"-" json:"solutions,omitempty"`
	Assignments []solver.Assignment `db:"-" json:"assignments,omitempty"`
}

// NewRun creates a Run shell with a fresh ID and timestamp.
func NewRun(scenarioName, variant string) Run {
	return Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Scenario:  scenarioName,
		Variant:   variant,
	}
}

// solutionsBlob is the solutions_json column payload.
type solutionsBlob struct {
	Solutions   []solver.Solution   `json:"solutions,omitempty"`
	Assignments []solver.Assignment `json:"assignments,omitempty"`
}

// SaveRun inserts one run.
func (db *DB) SaveRun(run Run) error {
	blob, err := json.Marshal(solutionsBlob{
		Solutions:   run.Solutions,
		Assignments: run.Assignments,
	})
	if err != nil {
		return fmt.Errorf("encode solutions for run %s: %w", run.ID, err)
	}

	_, err = db.conn.Exec(`INSERT INTO runs
		(id, created_at, scenario, variant, pick, max_solutions, allow_reuse,
		 enumerated, checker_passed, simulated, accepted, solutions_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), run.Scenario, run.Variant,
		run.Pick, run.MaxSolutions, boolInt(run.AllowReuse),
		run.Enumerated, run.CheckerPassed, run.Simulated, run.Accepted,
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	slog.Info("run saved", "id", run.ID, "scenario", run.Scenario, "accepted", run.Accepted)
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Queryx(
		`SELECT id, created_at, scenario, variant, pick, max_solutions, allow_reuse,
		        enumerated, checker_passed, simulated, accepted, solutions_json
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
			allow     int
			blob      string
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.Scenario, &run.Variant,
			&run.Pick, &run.MaxSolutions, &allow,
			&run.Enumerated, &run.CheckerPassed, &run.Simulated, &run.Accepted,
			&blob); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		run.AllowReuse = allow != 0

		var sols solutionsBlob
		if err := json.Unmarshal([]byte(blob), &sols); err != nil {
			return nil, fmt.Errorf("decode solutions for run %s: %w", run.ID, err)
		}
		run.Solutions = sols.Solutions
		run.Assignments = sols.Assignments

		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
