// Package workflow drives verification runs end to end: build the
// circuits, place them on the device, run them on the resolved target,
// and score the histograms. One failed job never aborts a run; its
// entry records the failure and the loop moves on.
package workflow

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/device"
	"github.com/FiQCI/qflip/internal/score"
)

// Runner executes verification runs against one resolved backend.
// Jobs run sequentially; Runner is not safe for concurrent use.
type Runner struct {
	backend backend.Backend
}

// New returns a Runner for the given backend.
func New(b backend.Backend) *Runner {
	return &Runner{backend: b}
}

// Flip runs the qubit-flip verification workflow. Given qubits, each one
// gets its own single-qubit job; given none, a single job flips every
// qubit of the device together. Per-job failures are recorded in the
// report and do not stop the run; only a done context does, returning
// the partial report alongside ctx's error.
func (r *Runner) Flip(ctx context.Context, qubits []int, shots int) (*Report, error) {
	if shots <= 0 {
		return nil, &circuit.InvalidInputError{Field: "shots", Reason: "must be a positive integer"}
	}
	if len(qubits) == 0 {
		return r.FlipAll(ctx, nil, shots)
	}

	rep := r.newReport(ModePerQubit, shots)
	for _, q := range qubits {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Entries = append(rep.Entries, r.runFlip(ctx, []int{q}, shots))
	}
	return rep, nil
}

// FlipAll runs one job flipping the given qubits together. With no
// qubits it covers the whole device, the shape of a full-device
// verification pass.
func (r *Runner) FlipAll(ctx context.Context, qubits []int, shots int) (*Report, error) {
	if shots <= 0 {
		return nil, &circuit.InvalidInputError{Field: "shots", Reason: "must be a positive integer"}
	}
	if len(qubits) == 0 {
		dev := r.backend.Device()
		qubits = make([]int, dev.NumQubits)
		for i := range qubits {
			qubits[i] = i
		}
	}

	rep := r.newReport(ModeAllQubits, shots)
	rep.Entries = append(rep.Entries, r.runFlip(ctx, qubits, shots))
	return rep, nil
}

// Bell runs the two-qubit Bell pair circuit with default placement and
// reports its histogram. Bell runs are not scored; the interesting part
// is the correlated counts and the job metadata.
func (r *Runner) Bell(ctx context.Context, shots int) (*Report, error) {
	if shots <= 0 {
		return nil, &circuit.InvalidInputError{Field: "shots", Reason: "must be a positive integer"}
	}

	rep := r.newReport(ModeBell, shots)
	out := Outcome{
		Qubits:     []int{0, 1},
		QubitNames: r.expectedNames([]int{0, 1}),
	}
	job := backend.Job{Circuit: circuit.Bell(), Shots: shots}
	rep.Entries = append(rep.Entries, r.execute(ctx, out, job))
	return rep, nil
}

func (r *Runner) newReport(mode string, shots int) *Report {
	return &Report{
		Target: r.backend.Name(),
		Device: r.backend.Device().ID,
		Shots:  shots,
		Mode:   mode,
	}
}

// runFlip builds and executes one flip job over the given qubits.
func (r *Runner) runFlip(ctx context.Context, qubits []int, shots int) Outcome {
	out := Outcome{
		Qubits:     append([]int(nil), qubits...),
		QubitNames: r.expectedNames(qubits),
		Desired:    score.AllOnes(len(qubits)),
	}

	c, layout, err := circuit.Flip(qubits)
	if err != nil {
		slog.Error("circuit build failed", "qubits", qubits, "error", err)
		return out.fail(err)
	}
	slog.Debug("circuit built", "qubits", qubits, "qasm", c.QASM())

	return r.execute(ctx, out, backend.Job{Circuit: c, Layout: layout, Shots: shots})
}

// execute submits the job, waits for its terminal state, and fills in
// the outcome. Scoring runs only when the outcome names a desired
// bitstring.
func (r *Runner) execute(ctx context.Context, out Outcome, job backend.Job) Outcome {
	h, err := r.backend.Submit(ctx, job)
	if err != nil {
		slog.Error("job submission failed", "qubits", out.Qubits, "error", err)
		return out.fail(err)
	}
	out.JobID = h.ID()
	slog.Info("job submitted", "job_id", out.JobID, "qubits", out.Qubits, "shots", job.Shots)

	res, err := h.Result(ctx)
	if err != nil {
		slog.Error("job failed", "job_id", out.JobID, "error", err)
		return out.fail(err)
	}

	out.Counts = res.Counts
	out.CalibrationSetID = res.CalibrationSetID
	out.PhysicalNames = res.PhysicalNames
	if res.PhysicalNames != nil && !sameNames(res.PhysicalNames, out.QubitNames) {
		// The run stays valid; the mismatch is recorded for the reader.
		out.NameMismatch = true
		slog.Warn("realized placement differs from profile",
			"job_id", out.JobID, "expected", out.QubitNames, "realized", res.PhysicalNames)
	}

	if out.Desired != "" {
		p, err := score.SuccessProbability(res.Counts, job.Shots, out.Desired)
		if err != nil {
			return out.fail(err)
		}
		out.Probability = p
	}

	slog.Info("job finished",
		"job_id", out.JobID, "counts", out.Counts.String(), "probability", out.Probability)
	return out
}

// expectedNames maps physical qubits to profile names, falling back to
// q<i> for qubits the profile does not cover.
func (r *Runner) expectedNames(qubits []int) []string {
	return deviceNames(r.backend.Device(), qubits)
}

func deviceNames(dev *device.Device, qubits []int) []string {
	names := make([]string, len(qubits))
	for i, q := range qubits {
		if name := dev.QubitName(q); name != "" {
			names[i] = name
		} else {
			names[i] = "q" + strconv.Itoa(q)
		}
	}
	return names
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
