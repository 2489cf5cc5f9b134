// Package harness runs workflow scenarios end to end against a scripted
// backend. A scenario is a YAML file naming the run to perform, the
// outcome of every job the backend will play back, and assertions over
// the resulting report. Golden-file comparison pins the full report
// serialization.
//
// Scenarios exist to validate the workflow's contracts from the
// outside, most importantly the partial-failure policy: one failed job
// never aborts the rest of a run.
package harness
