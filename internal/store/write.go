package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// WriteRun inserts one run record. The record's ID is computed from its
// content, and the insert uses ON CONFLICT(id) DO NOTHING, so writing
// the same record twice is a no-op. Returns the record's ID.
func (s *Store) WriteRun(ctx context.Context, r Run) (string, error) {
	id := RunID(r)

	qubitsJSON, err := marshalInts(r.Qubits)
	if err != nil {
		return "", fmt.Errorf("write run: %w", err)
	}
	namesJSON, err := marshalStrings(r.QubitNames)
	if err != nil {
		return "", fmt.Errorf("write run: %w", err)
	}
	countsJSON, err := marshalCounts(r.Counts)
	if err != nil {
		return "", fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, target, device, mode, shots, qubits, qubit_names,
		 desired, job_id, calibration_set, counts, probability, failure)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		r.CreatedAt.UTC().Format(timeLayout),
		r.Target,
		r.Device,
		r.Mode,
		r.Shots,
		qubitsJSON,
		namesJSON,
		r.Desired,
		r.JobID,
		r.CalibrationSet,
		countsJSON,
		r.Probability,
		r.Failure,
	)
	if err != nil {
		return "", fmt.Errorf("write run: %w", err)
	}

	return id, nil
}

// WriteRuns inserts a batch of records in order, returning their IDs.
// Each insert is idempotent on its own; a failure stops the batch.
func (s *Store) WriteRuns(ctx context.Context, runs []Run) ([]string, error) {
	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		id, err := s.WriteRun(ctx, r)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// marshalInts serializes an int slice to a JSON array. Nil marshals as
// the empty array so the column never holds SQL NULL.
func marshalInts(xs []int) (string, error) {
	if xs == nil {
		xs = []int{}
	}
	b, err := json.Marshal(xs)
	if err != nil {
		return "", fmt.Errorf("marshal ints: %w", err)
	}
	return string(b), nil
}

func marshalStrings(xs []string) (string, error) {
	if xs == nil {
		xs = []string{}
	}
	b, err := json.Marshal(xs)
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(b), nil
}

// marshalCounts serializes a histogram to a JSON object. encoding/json
// sorts object keys, so equal histograms always serialize identically.
func marshalCounts(counts map[string]int) (string, error) {
	if counts == nil {
		counts = map[string]int{}
	}
	b, err := json.Marshal(counts)
	if err != nil {
		return "", fmt.Errorf("marshal counts: %w", err)
	}
	return string(b), nil
}
