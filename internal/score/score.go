// Package score turns measurement histograms into success probabilities.
package score

import (
	"fmt"
	"strings"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/circuit"
)

// AllOnes returns the desired bitstring for a register of n qubits that
// should read one at every position.
func AllOnes(n int) string {
	return strings.Repeat("1", n)
}

// SuccessProbability returns the fraction of requested shots observed in
// the desired bitstring. A bitstring absent from the histogram counts as
// zero, so the result is 0.0 rather than an error.
func SuccessProbability(counts backend.Counts, shots int, desired string) (float64, error) {
	if shots <= 0 {
		return 0, &circuit.InvalidInputError{Field: "shots", Reason: "must be a positive integer"}
	}
	if desired == "" {
		return 0, &circuit.InvalidInputError{Field: "desired", Reason: "desired bitstring must be non-empty"}
	}
	return float64(counts[desired]) / float64(shots), nil
}

// Percent renders a probability the way run summaries print it.
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
