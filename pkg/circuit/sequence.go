package circuit

import (
	"slices"
)

// Recorder receives gates in emission order.
type Recorder interface {
	Record(g Gate)
}

// Sequence is an append-only, ordered list of gates. It is the default
// Recorder and is not safe for concurrent appends.
type Sequence struct {
	gates []Gate
}

// NewSequence creates an empty gate sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Record appends a gate to the sequence.
func (s *Sequence) Record(g Gate) {
	g.Wires = slices.Clone(g.Wires)
	g.Params = slices.Clone(g.Params)
	s.gates = append(s.gates, g)
}

// Extend appends every gate of o, in order.
func (s *Sequence) Extend(o *Sequence) {
	for _, g := range o.gates {
		s.Record(g)
	}
}

// Gates returns a copy of the recorded gates.
func (s *Sequence) Gates() []Gate {
	out := make([]Gate, len(s.gates))
	for i, g := range s.gates {
		g.Wires = slices.Clone(g.Wires)
		g.Params = slices.Clone(g.Params)
		out[i] = g
	}
	return out
}

// At returns the i-th gate.
func (s *Sequence) At(i int) Gate {
	return s.gates[i]
}

// Len returns the number of recorded gates.
func (s *Sequence) Len() int {
	return len(s.gates)
}

// Count returns the number of gates of the given type.
func (s *Sequence) Count(gateType string) int {
	n := 0
	for _, g := range s.gates {
		if g.Type == gateType {
			n++
		}
	}
	return n
}

// Counts returns gate counts keyed by type.
func (s *Sequence) Counts() map[string]int {
	counts := make(map[string]int)
	for _, g := range s.gates {
		counts[g.Type]++
	}
	return counts
}

// Wires returns the sorted set of wires referenced by any gate.
func (s *Sequence) Wires() []int {
	var wires []int
	for _, g := range s.gates {
		for _, q := range g.Qubits() {
			if !slices.Contains(wires, q) {
				wires = append(wires, q)
			}
		}
	}
	slices.Sort(wires)
	return wires
}

// Clone creates a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{gates: s.Gates()}
}

// Equal reports whether both sequences hold structurally identical gates in
// the same order.
func (s *Sequence) Equal(o *Sequence) bool {
	return slices.EqualFunc(s.gates, o.gates, Gate.Equal)
}
