package stateprep

import (
	"fmt"

	"qstateprep/pkg/circuit"
)

// BasisState returns the X gates that prepare the computational basis state
// bits on wires: one X per wire whose bit is 1, in wire order.
func BasisState(bits []int, wires []int) (*circuit.Sequence, error) {
	if err := validateWires(wires); err != nil {
		return nil, err
	}
	if len(bits) != len(wires) {
		return nil, fmt.Errorf("%w: got %d bits for %d wires", ErrBasisLength, len(bits), len(wires))
	}
	for i, b := range bits {
		if b != 0 && b != 1 {
			return nil, fmt.Errorf("%w: entry %d is %d", ErrBasisValue, i, b)
		}
	}

	seq := circuit.NewSequence()
	for i, b := range bits {
		if b == 1 {
			seq.Record(circuit.X(wires[i]))
		}
	}
	return seq, nil
}
