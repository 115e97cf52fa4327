package circuit

import (
	"fmt"
	"math"
)

// Lower rewrites every Pauli rotation in seq into H, RX, CX and RZ gates.
// Other gates are copied through unchanged.
//
// exp(-i*theta/2 * P) is realized by rotating each non-identity wire into
// the Z basis, computing the parity onto the last such wire with a CX
// ladder, applying RZ(theta) there and undoing the ladder and basis change.
// An all-identity word is a global phase and produces no gates.
func Lower(seq *Sequence) (*Sequence, error) {
	out := NewSequence()
	for _, g := range seq.gates {
		if g.Type != TypePauliRot {
			out.Record(g)
			continue
		}
		if err := lowerPauliRot(out, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func lowerPauliRot(rec Recorder, g Gate) error {
	if len(g.Word) != len(g.Wires) {
		return fmt.Errorf("%w: word %q on %d wires", ErrBadPauliWord, g.Word, len(g.Wires))
	}

	var active []int
	for i, p := range g.Word {
		switch p {
		case 'I':
		case 'X', 'Y', 'Z':
			active = append(active, g.Wires[i])
		default:
			return fmt.Errorf("%w: letter %q in %q", ErrBadPauliWord, p, g.Word)
		}
	}
	if len(active) == 0 {
		return nil
	}

	for i, p := range g.Word {
		switch p {
		case 'X':
			rec.Record(H(g.Wires[i]))
		case 'Y':
			rec.Record(RX(math.Pi/2, g.Wires[i]))
		}
	}
	for i := 0; i+1 < len(active); i++ {
		rec.Record(CX(active[i], active[i+1]))
	}
	rec.Record(RZ(g.Angle(), active[len(active)-1]))
	for i := len(active) - 2; i >= 0; i-- {
		rec.Record(CX(active[i], active[i+1]))
	}
	for i, p := range g.Word {
		switch p {
		case 'X':
			rec.Record(H(g.Wires[i]))
		case 'Y':
			rec.Record(RX(-math.Pi/2, g.Wires[i]))
		}
	}
	return nil
}
