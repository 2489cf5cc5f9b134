// Package backend is the execution-target boundary: everything above it
// builds circuits and reads histograms, everything below it talks to a
// particular way of running them.
//
// Two targets are provided:
//
//   - Remote submits jobs to a cortex-style REST endpoint and polls
//     until the job reaches a terminal state.
//   - Simulator evolves the statevector locally and samples the
//     terminating measurement.
//
// Both run the same admission checks before accepting a job, so a
// placement that a device cannot satisfy fails the same way on either
// target.
//
// # Submission Protocol
//
// Submit performs admission and hands back a Handle; Handle.Result
// blocks until the job is terminal. Errors split along that line:
// SubmitError before acceptance, ExecError after. Malformed caller
// input (no circuit, non-positive shots) is neither and surfaces as an
// InvalidInputError from the circuit package.
//
// # Counts
//
// Counts keys are measurement bitstrings with the highest register
// position leftmost, the convention hardware endpoints use. The key
// "10" therefore means position 1 measured one and position 0 measured
// zero.
package backend
