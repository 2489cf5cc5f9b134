// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/device"
)

// Step scripts the outcome of one submitted job, in submission order.
// Exactly one of SubmitErr, ExecErr, or Counts should be set.
type Step struct {
	SubmitErr        error
	ExecErr          error
	JobID            string
	Counts           map[string]int
	CalibrationSetID string
	PhysicalNames    []string
}

// ScriptedBackend plays back a fixed sequence of job outcomes. It skips
// the real targets' admission checks so tests can script any behavior,
// and it records every submitted job for assertions.
//
// Submit panics once the script is exhausted, so a test that submits
// more jobs than it scripted fails loudly.
type ScriptedBackend struct {
	BackendName string // Name() result; defaults to "scripted"
	Dev         *device.Device
	Steps       []Step

	Submitted []backend.Job
	next      int
}

var _ backend.Backend = (*ScriptedBackend)(nil)

// NewScriptedBackend returns a backend playing back steps against dev.
func NewScriptedBackend(dev *device.Device, steps ...Step) *ScriptedBackend {
	return &ScriptedBackend{Dev: dev, Steps: steps}
}

func (b *ScriptedBackend) Name() string {
	if b.BackendName == "" {
		return "scripted"
	}
	return b.BackendName
}

func (b *ScriptedBackend) Device() *device.Device { return b.Dev }

// Submit records the job and plays the next step.
func (b *ScriptedBackend) Submit(ctx context.Context, job backend.Job) (backend.Handle, error) {
	if b.next >= len(b.Steps) {
		panic(fmt.Sprintf("ScriptedBackend: %d steps scripted, job %d submitted", len(b.Steps), b.next+1))
	}
	step := b.Steps[b.next]
	b.next++
	b.Submitted = append(b.Submitted, job)

	if step.SubmitErr != nil {
		return nil, step.SubmitErr
	}
	id := step.JobID
	if id == "" {
		id = fmt.Sprintf("scripted-%04d", b.next)
	}
	return &scriptedHandle{step: step, id: id}, nil
}

type scriptedHandle struct {
	step Step
	id   string
}

func (h *scriptedHandle) ID() string { return h.id }

func (h *scriptedHandle) Result(ctx context.Context) (*backend.Result, error) {
	if h.step.ExecErr != nil {
		return nil, h.step.ExecErr
	}
	return &backend.Result{
		JobID:            h.id,
		Counts:           backend.Counts(h.step.Counts),
		CalibrationSetID: h.step.CalibrationSetID,
		PhysicalNames:    h.step.PhysicalNames,
	}, nil
}

// HelmiDevice compiles the builtin helmi profile, failing the test on
// error. Most scripted tests run against it.
func HelmiDevice(tb testingTB) *device.Device {
	tb.Helper()
	devices, err := device.Builtin()
	if err != nil {
		tb.Fatalf("builtin profiles: %v", err)
	}
	dev, ok := device.Find(devices, device.DefaultID)
	if !ok {
		tb.Fatalf("builtin profiles missing %s", device.DefaultID)
	}
	return dev
}

// testingTB is the subset of testing.TB used here, kept narrow so this
// package does not import testing into non-test builds.
type testingTB interface {
	Helper()
	Fatalf(format string, args ...any)
}
