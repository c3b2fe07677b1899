// Package storage provides SQLite-based persistence for simulation run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sqlx.DB
}

// Run is the summary of one completed simulation run.
type Run struct {
	ID                 string  `db:"id"`
	Scenario           string  `db:"scenario"`
	Seed               int64   `db:"seed"`
	Preset             string  `db:"preset"`
	Ticks              int64   `db:"ticks"`
	FinalConcentration float64 `db:"final_concentration"`
	MinConcentration   float64 `db:"min_concentration"`
	PeakRisk           float64 `db:"peak_risk"`
	PeakAmplification  float64 `db:"peak_amplification"`
	TotalCost          float64 `db:"total_cost"`
	Regime             string  `db:"regime"`
	Agents             int     `db:"agents"`
	CreatedUnix        int64   `db:"created_at"`
}

// CreatedAt returns the creation time of the run.
func (r Run) CreatedAt() time.Time {
	return time.Unix(r.CreatedUnix, 0)
}

// Sample is one recorded tick of a run.
type Sample struct {
	RunID         string  `db:"run_id"`
	Tick          int64   `db:"tick"`
	Concentration float64 `db:"concentration"`
	Amplification float64 `db:"amplification"`
	CascadeRisk   float64 `db:"cascade_risk"`
	PowerLaw      float64 `db:"power_law"`
	Cost          float64 `db:"cost"`
	Agents        int     `db:"agents"`
	Regime        string  `db:"regime"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			final_concentration REAL NOT NULL,
			min_concentration REAL NOT NULL,
			peak_risk REAL NOT NULL,
			peak_amplification REAL NOT NULL,
			total_cost REAL NOT NULL,
			regime TEXT NOT NULL,
			agents INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_worst ON runs(scenario, min_concentration);

		CREATE TABLE IF NOT EXISTS run_samples (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			concentration REAL NOT NULL,
			amplification REAL NOT NULL,
			cascade_risk REAL NOT NULL,
			power_law REAL NOT NULL,
			cost REAL NOT NULL,
			agents INTEGER NOT NULL,
			regime TEXT NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its samples in one transaction. A new ID and
// creation time are assigned when missing. Returns the run ID.
func (s *Store) SaveRun(run Run, samples []Sample) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedUnix == 0 {
		run.CreatedUnix = time.Now().Unix()
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(
		`INSERT INTO runs
		 (id, scenario, seed, preset, ticks, final_concentration, min_concentration,
		  peak_risk, peak_amplification, total_cost, regime, agents, created_at)
		 VALUES (:id, :scenario, :seed, :preset, :ticks, :final_concentration, :min_concentration,
		  :peak_risk, :peak_amplification, :total_cost, :regime, :agents, :created_at)`,
		run,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	if len(samples) > 0 {
		stmt, err := tx.PrepareNamed(
			`INSERT INTO run_samples
			 (run_id, tick, concentration, amplification, cascade_risk, power_law, cost, agents, regime)
			 VALUES (:run_id, :tick, :concentration, :amplification, :cascade_risk, :power_law, :cost, :agents, :regime)`,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot prepare samples: %w", err)
		}
		defer stmt.Close()

		for _, smp := range samples {
			smp.RunID = run.ID
			if _, err := stmt.Exec(smp); err != nil {
				return "", fmt.Errorf("storage: cannot save sample %d: %w", smp.Tick, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns retrieves the most recent runs, optionally for one scenario.
func (s *Store) RecentRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT * FROM runs
		 WHERE (? = '' OR scenario = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return runs, nil
}

// WorstRuns retrieves the runs with the lowest minimum concentration.
func (s *Store) WorstRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT * FROM runs
		 WHERE (? = '' OR scenario = ?)
		 ORDER BY min_concentration ASC, total_cost DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query worst runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by ID. Returns nil if it does not exist.
func (s *Store) GetRun(id string) (*Run, error) {
	var run Run
	err := s.db.Get(&run, `SELECT * FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// Samples retrieves the recorded samples of a run in tick order.
func (s *Store) Samples(runID string) ([]Sample, error) {
	var samples []Sample
	err := s.db.Select(&samples,
		`SELECT * FROM run_samples WHERE run_id = ? ORDER BY tick`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	return samples, nil
}

// DeleteRuns removes every run of a scenario along with its samples.
// An empty scenario deletes all runs.
func (s *Store) DeleteRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE (? = '' OR scenario = ?)", scenario, scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for one scenario.
type ScenarioStats struct {
	Scenario         string  `db:"scenario"`
	Runs             int     `db:"runs"`
	MinConcentration float64 `db:"min_concentration"`
	PeakRisk         float64 `db:"peak_risk"`
	AvgCost          float64 `db:"avg_cost"`
	MaxCost          float64 `db:"max_cost"`
	LastRunUnix      int64   `db:"last_run"`
}

// LastRun returns the creation time of the most recent run.
func (st ScenarioStats) LastRun() time.Time {
	return time.Unix(st.LastRunUnix, 0)
}

// AllScenarioStats retrieves statistics for every scenario with stored runs,
// sorted by scenario.
func (s *Store) AllScenarioStats() ([]ScenarioStats, error) {
	var stats []ScenarioStats
	err := s.db.Select(&stats,
		`SELECT scenario,
		        COUNT(*) AS runs,
		        MIN(min_concentration) AS min_concentration,
		        MAX(peak_risk) AS peak_risk,
		        AVG(total_cost) AS avg_cost,
		        MAX(total_cost) AS max_cost,
		        MAX(created_at) AS last_run
		 FROM runs
		 GROUP BY scenario
		 ORDER BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	return stats, nil
}
