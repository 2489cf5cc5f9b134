package workflow

import (
	"fmt"
	"strings"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/score"
)

// Run modes, named after what the report describes.
const (
	ModePerQubit  = "per-qubit"
	ModeAllQubits = "all-qubits"
	ModeBell      = "bell"
)

// Outcome records one job of a run: either a scored histogram or the
// error that stopped the job. Err carries the typed error for callers;
// Failure mirrors its message for serialized reports.
type Outcome struct {
	Qubits           []int          `json:"qubits"`
	QubitNames       []string       `json:"qubit_names"`
	Desired          string         `json:"desired,omitempty"`
	JobID            string         `json:"job_id,omitempty"`
	CalibrationSetID string         `json:"calibration_set_id,omitempty"`
	PhysicalNames    []string       `json:"physical_names,omitempty"`
	NameMismatch     bool           `json:"name_mismatch,omitempty"`
	Counts           backend.Counts `json:"counts,omitempty"`
	Probability      float64        `json:"probability"`
	Failure          string         `json:"failure,omitempty"`

	Err error `json:"-"`
}

// Failed reports whether the job reached a scored result.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Label names the outcome's qubits the way run summaries print them.
func (o Outcome) Label() string {
	return strings.Join(o.QubitNames, "+")
}

func (o Outcome) fail(err error) Outcome {
	o.Err = err
	o.Failure = err.Error()
	return o
}

// Report is the complete record of one run.
type Report struct {
	Target  string    `json:"target"`
	Device  string    `json:"device"`
	Shots   int       `json:"shots"`
	Mode    string    `json:"mode"`
	Entries []Outcome `json:"entries"`
}

// Failures returns the number of failed entries.
func (r *Report) Failures() int {
	n := 0
	for _, o := range r.Entries {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Text renders the report for terminal output. Equal reports always
// render identically: counts print with sorted keys and probabilities
// with two decimals.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s run on %s (device %s, %d shots)\n", r.Mode, r.Target, r.Device, r.Shots)

	for _, o := range r.Entries {
		if o.Failed() {
			fmt.Fprintf(&b, "  %s: failed: %s\n", o.Label(), o.Failure)
			continue
		}
		line := fmt.Sprintf("  %s: %s", o.Label(), o.Counts.String())
		if o.Desired != "" {
			line += fmt.Sprintf("  success probability %s", score.Percent(o.Probability))
		}
		if o.NameMismatch {
			line += fmt.Sprintf(" (realized on %s)", strings.Join(o.PhysicalNames, "+"))
		}
		b.WriteString(line)
		b.WriteByte('\n')

		if r.Mode == ModeBell {
			fmt.Fprintf(&b, "  job id: %s\n", o.JobID)
			if o.CalibrationSetID != "" {
				fmt.Fprintf(&b, "  calibration set id: %s\n", o.CalibrationSetID)
			}
		}
	}

	failed := r.Failures()
	fmt.Fprintf(&b, "jobs: %d, succeeded: %d, failed: %d\n",
		len(r.Entries), len(r.Entries)-failed, failed)
	return b.String()
}
