// Package journal persists a history of simulation runs so results can be
// compared across parameter tweaks without re-running old scenarios.
package journal

import (
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	params_file TEXT NOT NULL,
	seed INTEGER NOT NULL,
	trials INTEGER NOT NULL,
	excluded INTEGER NOT NULL,
	success_rate REAL NOT NULL,
	depletion_rate REAL NOT NULL,
	median_ending REAL NOT NULL,
	p10_ending REAL NOT NULL,
	p90_ending REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// RunRecord is one journaled simulation run.
type RunRecord struct {
	RunID         string
	CreatedAt     time.Time
	ParamsFile    string
	Seed          int64
	Trials        int
	Excluded      int
	SuccessRate   float64
	DepletionRate float64
	MedianEnding  float64
	P10Ending     float64
	P90Ending     float64
}

// SQLiteJournal stores run records in a single SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "journal: open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "journal: apply schema")
	}
	return &SQLiteJournal{db: db}, nil
}

// RecordRun inserts one run record.
func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created_at, params_file, seed, trials, excluded,
		 success_rate, depletion_rate, median_ending, p10_ending, p90_ending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt, r.ParamsFile, r.Seed, r.Trials, r.Excluded,
		r.SuccessRate, r.DepletionRate, r.MedianEnding, r.P10Ending, r.P90Ending,
	)
	if err != nil {
		return eris.Wrap(err, "journal: record run")
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (j *SQLiteJournal) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(`
		SELECT run_id, created_at, params_file, seed, trials, excluded,
		       success_rate, depletion_rate, median_ending, p10_ending, p90_ending
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "journal: list runs")
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.ParamsFile, &r.Seed,
			&r.Trials, &r.Excluded, &r.SuccessRate, &r.DepletionRate,
			&r.MedianEnding, &r.P10Ending, &r.P90Ending); err != nil {
			return nil, eris.Wrap(err, "journal: scan run")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "journal: iterate runs")
	}
	return out, nil
}

// GetRun fetches one run by ID.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, created_at, params_file, seed, trials, excluded,
		       success_rate, depletion_rate, median_ending, p10_ending, p90_ending
		FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.CreatedAt, &r.ParamsFile, &r.Seed, &r.Trials,
			&r.Excluded, &r.SuccessRate, &r.DepletionRate, &r.MedianEnding,
			&r.P10Ending, &r.P90Ending)
	if err != nil {
		return RunRecord{}, eris.Wrap(err, "journal: get run")
	}
	return r, nil
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
