// Package sim executes gate sequences on a dense state vector.
//
// Wire labels are integers. Wire 0 is the most significant bit of the basis
// index, so an N-qubit register maps wire q to bit N-1-q.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"

	"qstateprep/pkg/circuit"
)

var (
	// ErrWireOutOfRange is returned when a gate touches a wire outside the register.
	ErrWireOutOfRange = errors.New("sim: wire out of range")

	// ErrUnsupportedGate is returned for gate types the simulator cannot apply.
	ErrUnsupportedGate = errors.New("sim: unsupported gate")
)

// StateVector holds 2^NumQubits complex amplitudes.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// New returns the all-zero basis state on numQubits wires.
func New(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]complex128, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Run executes seq from |0...0> on numQubits wires.
func Run(seq *circuit.Sequence, numQubits int) (*StateVector, error) {
	s := New(numQubits)
	for i, g := range seq.Gates() {
		if err := s.ApplyGate(g); err != nil {
			return nil, fmt.Errorf("gate %d (%s): %w", i, g, err)
		}
	}
	return s, nil
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// bit returns the basis-index mask of a wire.
func (s *StateVector) bit(q int) (int, error) {
	if q < 0 || q >= s.NumQubits {
		return 0, fmt.Errorf("%w: wire %d on %d qubits", ErrWireOutOfRange, q, s.NumQubits)
	}
	return 1 << (s.NumQubits - 1 - q), nil
}

// ApplyGate applies a single gate in place.
func (s *StateVector) ApplyGate(g circuit.Gate) error {
	if g.Type == circuit.TypePauliRot {
		return s.applyPauliRot(g.Angle(), g.Word, g.Wires)
	}

	bit, err := s.bit(g.Target)
	if err != nil {
		return err
	}

	switch g.Type {
	case circuit.TypeH:
		s.applyH(bit)
	case circuit.TypeX:
		s.applyX(bit)
	case circuit.TypeRX:
		s.applyRX(bit, g.Angle())
	case circuit.TypeRY:
		s.applyRY(bit, g.Angle())
	case circuit.TypeRZ:
		s.applyRZ(bit, g.Angle())
	case circuit.TypeCX:
		cBit, err := s.bit(g.Control)
		if err != nil {
			return err
		}
		s.applyCX(cBit, bit)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGate, g.Type)
	}
	return nil
}

func (s *StateVector) applyH(bit int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a0 + a1)
			s.Amplitudes[j] = hFactor * (a0 - a1)
		}
	}
}

func (s *StateVector) applyX(bit int) {
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyRX(bit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 + js*a1
			s.Amplitudes[j] = js*a0 + c*a1
		}
	}
}

func (s *StateVector) applyRY(bit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 - sn*a1
			s.Amplitudes[j] = sn*a0 + c*a1
		}
	}
}

func (s *StateVector) applyRZ(bit int, theta float64) {
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(cBit, tBit int) {
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyPauliRot applies exp(-i*theta/2 * P) = cos(theta/2) - i*sin(theta/2)*P.
func (s *StateVector) applyPauliRot(theta float64, word string, wires []int) error {
	if len(word) != len(wires) {
		return fmt.Errorf("%w: word %q on %d wires", circuit.ErrBadPauliWord, word, len(wires))
	}

	var flip, yMask, zMask int
	for i, p := range word {
		bit, err := s.bit(wires[i])
		if err != nil {
			return err
		}
		switch p {
		case 'I':
		case 'X':
			flip |= bit
		case 'Y':
			flip |= bit
			yMask |= bit
		case 'Z':
			zMask |= bit
		default:
			return fmt.Errorf("%w: letter %q in %q", circuit.ErrBadPauliWord, p, word)
		}
	}

	// Y|0> = i|1>, Y|1> = -i|0>; Z|1> = -|1>.
	base := [4]complex128{1, 1i, -1, -1i}[bits.OnesCount(uint(yMask))%4]
	applied := make([]complex128, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		phase := base
		if bits.OnesCount(uint(i&yMask))%2 == 1 {
			phase = -phase
		}
		if bits.OnesCount(uint(i&zMask))%2 == 1 {
			phase = -phase
		}
		applied[i^flip] = phase * a
	}

	c := complex(math.Cos(theta/2), 0)
	ms := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		s.Amplitudes[i] = c*s.Amplitudes[i] + ms*applied[i]
	}
	return nil
}

// Probabilities returns |amplitude|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Norm returns the L2 norm of the state.
func (s *StateVector) Norm() float64 {
	return cmplxs.Norm(s.Amplitudes, 2)
}

// QubitProbability is the marginal distribution of one wire.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// GetQubitProbabilities returns the marginal distribution of every wire,
// indexed by wire label.
func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, prob := range s.Probabilities() {
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<(s.NumQubits-1-q)) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// BasisState is a basis state with non-negligible probability.
type BasisState struct {
	Index     int
	Amplitude complex128
	Prob      float64
	Phase     float64
	Hamming   int
}

// BasisStates lists the basis states whose probability exceeds 1e-10.
func (s *StateVector) BasisStates() []BasisState {
	states := make([]BasisState, 0, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		if prob > 1e-10 {
			states = append(states, BasisState{
				Index:     i,
				Amplitude: amp,
				Prob:      prob,
				Phase:     cmplx.Phase(amp),
				Hamming:   bits.OnesCount(uint(i)),
			})
		}
	}
	return states
}

// Fidelity returns |<a|b>|^2. It is insensitive to global phase.
func Fidelity(a, b []complex128) float64 {
	if len(a) != len(b) {
		return 0
	}
	d := cmplxs.Dot(a, b)
	return real(d)*real(d) + imag(d)*imag(d)
}

// TotalProbability sums the probabilities of every basis state.
func (s *StateVector) TotalProbability() float64 {
	return floats.Sum(s.Probabilities())
}
