package store

import (
	"time"

	"github.com/FiQCI/qflip/internal/workflow"
)

// FromReport flattens a workflow report into run records, one per
// entry, all stamped with the same time. Failed entries keep their
// failure text and carry no counts.
func FromReport(rep *workflow.Report, at time.Time) []Run {
	runs := make([]Run, 0, len(rep.Entries))
	for _, o := range rep.Entries {
		r := Run{
			CreatedAt:      at.UTC(),
			Target:         rep.Target,
			Device:         rep.Device,
			Mode:           rep.Mode,
			Shots:          rep.Shots,
			Qubits:         o.Qubits,
			QubitNames:     o.QubitNames,
			Desired:        o.Desired,
			JobID:          o.JobID,
			CalibrationSet: o.CalibrationSetID,
			Probability:    o.Probability,
			Failure:        o.Failure,
		}
		if o.Counts != nil {
			r.Counts = map[string]int(o.Counts)
		}
		r.ID = RunID(r)
		runs = append(runs, r)
	}
	return runs
}
