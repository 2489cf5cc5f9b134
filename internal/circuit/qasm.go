package circuit

import (
	"fmt"
	"strings"
)

// Register names used in emitted QASM. The classical register mirrors the
// quantum register size so counts keys carry one bit per qubit.
const (
	qregName = "qb"
	cregName = "meas"
)

// QASM renders the circuit as an OpenQASM 2.0 program, including the
// terminating measurement of every register position into the classical
// register.
func (c *Circuit) QASM() string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg %s[%d];\n", qregName, c.NumQubits)
	fmt.Fprintf(&b, "creg %s[%d];\n", cregName, c.NumQubits)
	for _, g := range c.Gates {
		switch g.Name {
		case GateCX:
			fmt.Fprintf(&b, "cx %s[%d],%s[%d];\n", qregName, g.Qubits[0], qregName, g.Qubits[1])
		default:
			fmt.Fprintf(&b, "%s %s[%d];\n", g.Name, qregName, g.Qubits[0])
		}
	}
	for i := 0; i < c.NumQubits; i++ {
		fmt.Fprintf(&b, "measure %s[%d] -> %s[%d];\n", qregName, i, cregName, i)
	}
	return b.String()
}
