// Package sim implements a dense statevector simulator for the small
// circuits this tool builds. State amplitudes are indexed so that bit q
// of the index holds register position q; rendered bitstrings therefore
// carry the highest position leftmost, matching the counts convention of
// hardware targets.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/FiQCI/qflip/internal/circuit"
)

// MaxQubits bounds the register size a single run will simulate. The
// amplitude vector doubles per qubit.
const MaxQubits = 24

// State is the amplitude vector of an n-qubit register, initialized to
// the all-zero basis state.
type State struct {
	n    int
	amps []complex128
}

// New returns the |0...0> state over n qubits.
func New(n int) *State {
	s := &State{n: n, amps: make([]complex128, 1<<n)}
	s.amps[0] = 1
	return s
}

// ApplyX flips register position q.
func (s *State) ApplyX(q int) {
	mask := 1 << q
	for i := range s.amps {
		if i&mask == 0 {
			s.amps[i], s.amps[i|mask] = s.amps[i|mask], s.amps[i]
		}
	}
}

// ApplyH applies a Hadamard to register position q.
func (s *State) ApplyH(q int) {
	mask := 1 << q
	inv := complex(1/math.Sqrt2, 0)
	for i := range s.amps {
		if i&mask == 0 {
			a, b := s.amps[i], s.amps[i|mask]
			s.amps[i] = (a + b) * inv
			s.amps[i|mask] = (a - b) * inv
		}
	}
}

// ApplyCX flips target when control is set.
func (s *State) ApplyCX(control, target int) {
	cmask, tmask := 1<<control, 1<<target
	for i := range s.amps {
		if i&cmask != 0 && i&tmask == 0 {
			s.amps[i], s.amps[i|tmask] = s.amps[i|tmask], s.amps[i]
		}
	}
}

// Probabilities returns the measurement distribution over basis states.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// Sample measures the register shots times and histograms the outcomes.
// Keys render the highest register position leftmost.
func (s *State) Sample(shots int, rng *rand.Rand) map[string]int {
	probs := s.Probabilities()
	counts := make(map[string]int)
	for i := 0; i < shots; i++ {
		u := rng.Float64()
		idx := len(probs) - 1
		acc := 0.0
		for j, p := range probs {
			acc += p
			if u < acc {
				idx = j
				break
			}
		}
		counts[fmt.Sprintf("%0*b", s.n, idx)]++
	}
	return counts
}

// Run evolves the circuit from the all-zero state and samples its
// terminating measurement shots times. The circuit must already have
// passed validation.
func Run(c *circuit.Circuit, shots int, rng *rand.Rand) (map[string]int, error) {
	if c.NumQubits > MaxQubits {
		return nil, fmt.Errorf("register of %d qubits exceeds simulator limit of %d", c.NumQubits, MaxQubits)
	}
	s := New(c.NumQubits)
	for _, g := range c.Gates {
		switch g.Name {
		case circuit.GateX:
			s.ApplyX(g.Qubits[0])
		case circuit.GateH:
			s.ApplyH(g.Qubits[0])
		case circuit.GateCX:
			s.ApplyCX(g.Qubits[0], g.Qubits[1])
		default:
			return nil, fmt.Errorf("unsupported gate %q", g.Name)
		}
	}
	return s.Sample(shots, rng), nil
}
