package backend

import (
	"context"
	"fmt"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/device"
)

// Target identifiers accepted by Resolve.
const (
	TargetRemote    = "remote"
	TargetSimulator = "simulator"
)

// ValidTargets defines the allowed execution targets.
var ValidTargets = []string{TargetRemote, TargetSimulator}

// Job is one unit of execution: a measured circuit, its placement on the
// device, and the number of shots. A nil Layout leaves placement to the
// target (identity).
type Job struct {
	Circuit *circuit.Circuit
	Layout  circuit.Layout
	Shots   int
}

// Result is the terminal outcome of a successful job.
type Result struct {
	JobID            string   `json:"job_id"`
	Counts           Counts   `json:"counts"`
	CalibrationSetID string   `json:"calibration_set_id,omitempty"`
	PhysicalNames    []string `json:"physical_names,omitempty"`
}

// Handle tracks a submitted job. Result blocks until the job reaches a
// terminal state or ctx is done.
type Handle interface {
	ID() string
	Result(ctx context.Context) (*Result, error)
}

// Backend runs jobs against one execution target. Implementations are
// not safe for concurrent use; the workflow runs jobs sequentially.
type Backend interface {
	Name() string
	Device() *device.Device
	Submit(ctx context.Context, job Job) (Handle, error)
}

// checkJob runs the admission checks shared by all targets. Malformed
// caller input comes back as an InvalidInputError, placements the device
// cannot satisfy as a SubmitError.
func checkJob(job Job, dev *device.Device, name string) error {
	if job.Circuit == nil {
		return &circuit.InvalidInputError{Field: "circuit", Reason: "job carries no circuit"}
	}
	if err := job.Circuit.Validate(); err != nil {
		return err
	}
	if job.Shots <= 0 {
		return &circuit.InvalidInputError{Field: "shots", Reason: "must be a positive integer"}
	}

	layout := job.Layout
	if layout == nil {
		layout = circuit.Identity(job.Circuit.NumQubits)
	}
	if err := layout.Validate(job.Circuit.NumQubits); err != nil {
		return &SubmitError{Backend: name, Reason: "invalid qubit placement", Err: err}
	}
	for _, q := range layout {
		if q >= dev.NumQubits {
			return &SubmitError{
				Backend: name,
				Reason:  fmt.Sprintf("physical qubit %d outside %s (%d qubits)", q, dev.ID, dev.NumQubits),
			}
		}
	}
	return nil
}
