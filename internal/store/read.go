package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is how created_at is stored: RFC 3339 with nanoseconds,
// always UTC, so lexicographic order equals chronological order.
const timeLayout = time.RFC3339Nano

// Filter narrows ListRuns. The zero value matches everything.
type Filter struct {
	Target string // exact match on target when non-empty
	Device string // exact match on device profile id when non-empty
	Limit  int    // maximum records returned; 0 means no limit
}

// ListRuns returns run records, newest first. Ordering is
// deterministic: created_at DESC, then id COLLATE BINARY ASC, so two
// records written in the same instant still list in a stable order.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, f Filter) ([]Run, error) {
	query := `
		SELECT id, created_at, target, device, mode, shots, qubits, qubit_names,
		       desired, job_id, calibration_set, counts, probability, failure
		FROM runs
	`
	var args []any
	where := ""
	if f.Target != "" {
		where = " WHERE target = ?"
		args = append(args, f.Target)
	}
	if f.Device != "" {
		if where == "" {
			where = " WHERE device = ?"
		} else {
			where += " AND device = ?"
		}
		args = append(args, f.Device)
	}
	query += where + " ORDER BY created_at DESC, id COLLATE BINARY ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a single record by ID. Returns sql.ErrNoRows if not
// found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, target, device, mode, shots, qubits, qubit_names,
		       desired, job_id, calibration_set, counts, probability, failure
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r          Run
		createdAt  string
		qubitsJSON string
		namesJSON  string
		countsJSON string
	)
	err := sc.Scan(
		&r.ID, &createdAt, &r.Target, &r.Device, &r.Mode, &r.Shots,
		&qubitsJSON, &namesJSON, &r.Desired, &r.JobID, &r.CalibrationSet,
		&countsJSON, &r.Probability, &r.Failure,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: created_at: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(qubitsJSON), &r.Qubits); err != nil {
		return Run{}, fmt.Errorf("scan run %s: qubits: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(namesJSON), &r.QubitNames); err != nil {
		return Run{}, fmt.Errorf("scan run %s: qubit_names: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(countsJSON), &r.Counts); err != nil {
		return Run{}, fmt.Errorf("scan run %s: counts: %w", r.ID, err)
	}
	if len(r.Counts) == 0 {
		r.Counts = nil
	}

	return r, nil
}
