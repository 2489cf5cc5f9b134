package backend

import (
	"context"
	"math/rand"
	"time"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/device"
	"github.com/FiQCI/qflip/internal/sim"
)

// Simulator runs jobs on the local statevector engine. It mimics the
// remote target's shape: Submit admits the job and mints an ID, the
// handle evolves the state and samples when asked for the result.
type Simulator struct {
	dev *device.Device
	rng *rand.Rand
	ids IDGenerator
}

var _ Backend = (*Simulator)(nil)

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSeed seeds the sampler. Zero seeds from the clock.
func WithSeed(seed int64) SimulatorOption {
	return func(s *Simulator) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithIDGenerator overrides the job ID generator (for testing).
func WithIDGenerator(ids IDGenerator) SimulatorOption {
	return func(s *Simulator) { s.ids = ids }
}

// NewSimulator returns a Simulator for the given device profile.
func NewSimulator(dev *device.Device, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		dev: dev,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		ids: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Name() string { return TargetSimulator }

func (s *Simulator) Device() *device.Device { return s.dev }

// Submit admits the job against the device profile and mints a job ID.
// The simulation itself runs when the handle's Result is read.
func (s *Simulator) Submit(ctx context.Context, job Job) (Handle, error) {
	if err := checkJob(job, s.dev, TargetSimulator); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &SubmitError{Backend: TargetSimulator, Reason: "context done", Err: err}
	}
	return &simHandle{s: s, job: job, id: s.ids.NewID()}, nil
}

type simHandle struct {
	s   *Simulator
	job Job
	id  string
}

func (h *simHandle) ID() string { return h.id }

func (h *simHandle) Result(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExecError{Backend: TargetSimulator, JobID: h.id, Status: "cancelled", Err: err}
	}

	counts, err := sim.Run(h.job.Circuit, h.job.Shots, h.s.rng)
	if err != nil {
		return nil, &ExecError{Backend: TargetSimulator, JobID: h.id, Status: statusFailed, Err: err}
	}

	layout := h.job.Layout
	if layout == nil {
		layout = circuit.Identity(h.job.Circuit.NumQubits)
	}
	names := make([]string, len(layout))
	for i, q := range layout {
		names[i] = h.s.dev.QubitName(q)
	}

	return &Result{JobID: h.id, Counts: counts, PhysicalNames: names}, nil
}
