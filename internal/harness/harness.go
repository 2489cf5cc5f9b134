package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/device"
	"github.com/FiQCI/qflip/internal/testutil"
	"github.com/FiQCI/qflip/internal/workflow"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Errors lists the assertions that did not hold. Empty when Pass.
	Errors []string

	// Report is the workflow report the run produced, for golden
	// comparison and further inspection.
	Report *workflow.Report
}

// Run executes a scenario: script the backend, drive the workflow, and
// check every assertion against the report. A scenario whose assertions
// fail still returns a Result (Pass=false); an error means the run
// itself could not execute.
func Run(scenario *Scenario) (*Result, error) {
	devID := scenario.Device
	if devID == "" {
		devID = device.DefaultID
	}
	devices, err := device.Builtin()
	if err != nil {
		return nil, fmt.Errorf("builtin profiles: %w", err)
	}
	dev, ok := device.Find(devices, devID)
	if !ok {
		return nil, fmt.Errorf("no builtin device profile %q", devID)
	}

	sb := testutil.NewScriptedBackend(dev, scriptSteps(scenario.Jobs)...)
	runner := workflow.New(sb)

	ctx := context.Background()
	var rep *workflow.Report
	switch scenario.Mode {
	case ModeFlip:
		rep, err = runner.Flip(ctx, scenario.Qubits, scenario.Shots)
	case ModeBell:
		rep, err = runner.Bell(ctx, scenario.Shots)
	default:
		return nil, fmt.Errorf("unknown mode %q", scenario.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: run: %w", scenario.Name, err)
	}

	result := &Result{Pass: true, Report: rep}
	for i, a := range scenario.Assertions {
		if err := checkAssertion(rep, &a); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Sprintf("assertions[%d] (%s): %v", i, a.Type, err))
		}
	}
	return result, nil
}

// scriptSteps converts job scripts into scripted backend steps. Error
// strings become the typed errors the real targets return.
func scriptSteps(jobs []JobScript) []testutil.Step {
	steps := make([]testutil.Step, len(jobs))
	for i, j := range jobs {
		step := testutil.Step{
			JobID:            j.JobID,
			Counts:           j.Counts,
			CalibrationSetID: j.CalibrationSet,
			PhysicalNames:    j.PhysicalNames,
		}
		if j.SubmitError != "" {
			step.SubmitErr = &backend.SubmitError{Backend: "scripted", Reason: j.SubmitError}
		}
		if j.ExecError != "" {
			step.ExecErr = &backend.ExecError{
				Backend: "scripted",
				JobID:   j.JobID,
				Status:  "failed",
				Err:     errors.New(j.ExecError),
			}
		}
		steps[i] = step
	}
	return steps
}
