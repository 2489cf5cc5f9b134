package circuit

import "fmt"

// Layout places register positions onto physical qubits: position i runs
// on physical qubit Layout[i]. A valid layout is total and injective over
// the register it accompanies.
type Layout []int

// Identity returns the layout that places position i onto physical
// qubit i.
func Identity(n int) Layout {
	l := make(Layout, n)
	for i := range l {
		l[i] = i
	}
	return l
}

// Map returns the layout as a position-to-physical-qubit map. The result
// is a copy; mutating it does not affect the layout.
func (l Layout) Map() map[int]int {
	m := make(map[int]int, len(l))
	for i, q := range l {
		m[i] = q
	}
	return m
}

// Validate checks that the layout covers a register of numQubits
// positions exactly once each and maps them to distinct non-negative
// physical qubits.
func (l Layout) Validate(numQubits int) error {
	if len(l) != numQubits {
		return fmt.Errorf("layout covers %d positions, register has %d", len(l), numQubits)
	}
	seen := make(map[int]int, len(l))
	for i, q := range l {
		if q < 0 {
			return fmt.Errorf("layout position %d maps to negative qubit %d", i, q)
		}
		if prev, dup := seen[q]; dup {
			return fmt.Errorf("layout positions %d and %d both map to qubit %d", prev, i, q)
		}
		seen[q] = i
	}
	return nil
}
