// Package circuit models the small gate circuits submitted to execution
// targets: a register of qubits, a gate list, and a terminating full
// measurement. Builders return the circuit together with the Layout that
// places each register position onto a physical qubit.
package circuit

// Gate names follow OpenQASM 2.0 / qelib1.inc.
const (
	GateX  = "x"
	GateH  = "h"
	GateCX = "cx"
)

// Gate is a single gate application. Qubits holds register positions,
// not physical indices: one entry for x/h, control then target for cx.
type Gate struct {
	Name   string `json:"name"`
	Qubits []int  `json:"qubits"`
}

// Circuit is a measured gate circuit over a register of NumQubits qubits.
// Every circuit ends with a full measurement of the register into a
// classical register of the same size; the measurement is implicit here
// and emitted by QASM.
type Circuit struct {
	Name      string `json:"name"`
	NumQubits int    `json:"num_qubits"`
	Gates     []Gate `json:"gates"`
}

// Flip builds a state-inversion circuit for the given physical qubits.
// The register has one position per requested qubit, an X gate is applied
// to every position, and the returned Layout places position i onto
// qubits[i].
//
// Duplicate physical indices are not rejected here; the resulting layout
// fails validation at submission instead. Callers should pass distinct
// indices.
func Flip(qubits []int) (*Circuit, Layout, error) {
	if len(qubits) == 0 {
		return nil, nil, &InvalidInputError{Field: "qubits", Reason: "must name at least one physical qubit"}
	}
	for _, q := range qubits {
		if q < 0 {
			return nil, nil, &InvalidInputError{Field: "qubits", Reason: "physical qubit indices must be non-negative"}
		}
	}

	c := &Circuit{
		Name:      "flip",
		NumQubits: len(qubits),
		Gates:     make([]Gate, 0, len(qubits)),
	}
	for i := range qubits {
		c.Gates = append(c.Gates, Gate{Name: GateX, Qubits: []int{i}})
	}

	layout := make(Layout, len(qubits))
	copy(layout, qubits)
	return c, layout, nil
}

// Bell builds the two-qubit Bell pair circuit: a Hadamard on position 0
// followed by a controlled-NOT from position 0 to position 1. Placement
// is left to the target (nil layout means identity).
func Bell() *Circuit {
	return &Circuit{
		Name:      "bell",
		NumQubits: 2,
		Gates: []Gate{
			{Name: GateH, Qubits: []int{0}},
			{Name: GateCX, Qubits: []int{0, 1}},
		},
	}
}

// Validate checks the structural invariants: a non-empty register, known
// gate names, correct arities, and gate operands within the register.
// Targets call this before accepting a job.
func (c *Circuit) Validate() error {
	if c.NumQubits < 1 {
		return &InvalidInputError{Field: "circuit", Reason: "register must hold at least one qubit"}
	}
	for _, g := range c.Gates {
		var arity int
		switch g.Name {
		case GateX, GateH:
			arity = 1
		case GateCX:
			arity = 2
		default:
			return &InvalidInputError{Field: "circuit", Reason: "unknown gate " + g.Name}
		}
		if len(g.Qubits) != arity {
			return &InvalidInputError{Field: "circuit", Reason: "gate " + g.Name + " has wrong operand count"}
		}
		for _, q := range g.Qubits {
			if q < 0 || q >= c.NumQubits {
				return &InvalidInputError{Field: "circuit", Reason: "gate operand outside register"}
			}
		}
		if g.Name == GateCX && g.Qubits[0] == g.Qubits[1] {
			return &InvalidInputError{Field: "circuit", Reason: "cx control and target must differ"}
		}
	}
	return nil
}
