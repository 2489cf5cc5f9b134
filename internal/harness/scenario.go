package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Run modes a scenario can request.
const (
	ModeFlip = "flip" // per-qubit loop, or all qubits together when the list is empty
	ModeBell = "bell"
)

// Scenario describes one scripted workflow run and its expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Device is the builtin device profile to run against.
	// Defaults to helmi.
	Device string `yaml:"device,omitempty"`

	// Mode selects the workflow: "flip" or "bell".
	Mode string `yaml:"mode"`

	// Qubits are the physical qubits to flip, one job each.
	// Empty means one job flipping the whole device (flip mode only).
	Qubits []int `yaml:"qubits,omitempty"`

	// Shots per job.
	Shots int `yaml:"shots"`

	// Jobs scripts the backend: one entry per submitted job, in
	// submission order. Exactly one of counts, submit_error, or
	// exec_error should be set per entry.
	Jobs []JobScript `yaml:"jobs"`

	// Assertions validate the final report.
	Assertions []Assertion `yaml:"assertions"`
}

// JobScript is the scripted outcome of one submitted job.
type JobScript struct {
	// JobID is the id the backend assigns on acceptance.
	JobID string `yaml:"job_id,omitempty"`

	// Counts is the measurement histogram of a completed job.
	Counts map[string]int `yaml:"counts,omitempty"`

	// SubmitError rejects the job at submission with this reason.
	SubmitError string `yaml:"submit_error,omitempty"`

	// ExecError accepts the job, then fails it with this reason.
	ExecError string `yaml:"exec_error,omitempty"`

	// CalibrationSet is the calibration set id the result reports.
	CalibrationSet string `yaml:"calibration_set,omitempty"`

	// PhysicalNames are the realized physical qubit names the result
	// reports, one per register position.
	PhysicalNames []string `yaml:"physical_names,omitempty"`
}

// Assertion validates one aspect of the final report.
type Assertion struct {
	// Type selects the check:
	//   - "entry_count": the report has exactly Count entries
	//   - "failure_count": exactly Count entries failed
	//   - "entry_ok": entry Entry succeeded
	//   - "entry_failed": entry Entry failed; Contains matches its failure text
	//   - "entry_probability": entry Entry scored exactly Probability
	//   - "entry_desired": entry Entry was scored against Desired
	//   - "report_mode": the report's mode equals Mode
	Type string `yaml:"type"`

	Entry       int     `yaml:"entry,omitempty"`
	Count       int     `yaml:"count,omitempty"`
	Contains    string  `yaml:"contains,omitempty"`
	Probability float64 `yaml:"probability,omitempty"`
	Desired     string  `yaml:"desired,omitempty"`
	Mode        string  `yaml:"mode,omitempty"`
}

// Assertion type constants.
const (
	AssertEntryCount       = "entry_count"
	AssertFailureCount     = "failure_count"
	AssertEntryOK          = "entry_ok"
	AssertEntryFailed      = "entry_failed"
	AssertEntryProbability = "entry_probability"
	AssertEntryDesired     = "entry_desired"
	AssertReportMode       = "report_mode"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected, so typos fail loudly instead of silently passing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Mode != ModeFlip && s.Mode != ModeBell {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeFlip, ModeBell, s.Mode)
	}
	if s.Mode == ModeBell && len(s.Qubits) > 0 {
		return fmt.Errorf("bell scenarios do not take qubits")
	}
	if s.Shots <= 0 {
		return fmt.Errorf("shots must be a positive integer")
	}
	if len(s.Jobs) == 0 {
		return fmt.Errorf("jobs list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, job := range s.Jobs {
		set := 0
		if len(job.Counts) > 0 {
			set++
		}
		if job.SubmitError != "" {
			set++
		}
		if job.ExecError != "" {
			set++
		}
		if set != 1 {
			return fmt.Errorf("jobs[%d]: exactly one of counts, submit_error, exec_error is required", i)
		}
		if job.SubmitError != "" && job.JobID != "" {
			return fmt.Errorf("jobs[%d]: a rejected job has no job_id", i)
		}
		if job.ExecError != "" && job.JobID == "" {
			return fmt.Errorf("jobs[%d]: exec_error requires the job_id of the accepted job", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Entry < 0 {
		return fmt.Errorf("assertions[%d]: entry must be non-negative", index)
	}

	switch a.Type {
	case AssertEntryCount, AssertFailureCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertEntryOK, AssertEntryFailed:
		// entry index checked against the report at run time
	case AssertEntryProbability:
		if a.Probability < 0 || a.Probability > 1 {
			return fmt.Errorf("assertions[%d]: probability must be in [0,1]", index)
		}
	case AssertEntryDesired:
		if a.Desired == "" {
			return fmt.Errorf("assertions[%d]: desired is required for entry_desired", index)
		}
	case AssertReportMode:
		if a.Mode == "" {
			return fmt.Errorf("assertions[%d]: mode is required for report_mode", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
