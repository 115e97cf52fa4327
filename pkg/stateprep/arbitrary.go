package stateprep

import (
	"fmt"
	"strings"

	"qstateprep/pkg/circuit"
)

// NumWeights returns the number of ansatz weights for numWires wires,
// 2*(2^numWires - 1).
func NumWeights(numWires int) int {
	return 2 * ((1 << numWires) - 1)
}

// PauliWords lists the Pauli words of the ansatz on numWires wires, one
// letter per wire.
//
// One wire gives X, Y. For m wires the list starts with X and Y on the first
// wire, continues with the (m-1)-wire list behind an I, and ends with the
// same list behind an X. For three wires:
//
//	XII YII IXI IYI IIX IIY IXX IXY XXI XYI XIX XIY XXX XXY
func PauliWords(numWires int) []string {
	if numWires < 1 {
		return nil
	}
	words := []string{"X", "Y"}
	for m := 2; m <= numWires; m++ {
		pad := strings.Repeat("I", m-1)
		next := make([]string, 0, 2*len(words)+2)
		next = append(next, "X"+pad, "Y"+pad)
		for _, w := range words {
			next = append(next, "I"+w)
		}
		for _, w := range words {
			next = append(next, "X"+w)
		}
		words = next
	}
	return words
}

// Arbitrary returns the parametrized ansatz on wires: weights[i] is the
// angle of a Pauli rotation over all wires with word PauliWords(n)[i].
func Arbitrary(weights []float64, wires []int, opts ...Option) (*circuit.Sequence, error) {
	cfg := newConfig(opts)
	if err := validateWires(wires); err != nil {
		return nil, err
	}
	if want := NumWeights(len(wires)); len(weights) != want {
		return nil, fmt.Errorf("%w: got %d weights for %d wires, want %d", ErrWeightsShape, len(weights), len(wires), want)
	}

	seq := circuit.NewSequence()
	for i, word := range PauliWords(len(wires)) {
		seq.Record(circuit.PauliRot(weights[i], word, wires))
	}
	cfg.logger.Debug().
		Str("preparer", "arbitrary").
		Ints("wires", wires).
		Int("rotations", seq.Len()).
		Msg("ansatz recorded")
	return seq, nil
}
