package stateprep

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/mat"

	"qstateprep/pkg/circuit"
)

// Axis selects the rotation family of a multiplexed rotation.
type Axis int

const (
	AxisY Axis = iota
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "RY"
	case AxisZ:
		return "RZ"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (a Axis) gate(theta float64, wire int) circuit.Gate {
	if a == AxisZ {
		return circuit.RZ(theta, wire)
	}
	return circuit.RY(theta, wire)
}

// MultiplexedRotation records a uniformly controlled rotation on target.
// angles[j] is the rotation applied when the controls hold pattern j, with
// controls[i] carrying bit i of j.
//
// The cascade has 2^k rotations for k controls, each followed by a CX from
// the control at the bit where consecutive Gray code entries differ,
// wrapping from the last entry to the first. With no controls a single
// rotation is recorded. Nothing is recorded when the input is invalid.
func MultiplexedRotation(rec circuit.Recorder, angles []float64, axis Axis, target int, controls []int) error {
	if axis != AxisY && axis != AxisZ {
		return fmt.Errorf("%w: %v", ErrUnknownAxis, axis)
	}
	k := len(controls)
	if k > MaxWires {
		return fmt.Errorf("%w: %d controls", ErrTooManyWires, k)
	}
	if len(angles) != 1<<k {
		return fmt.Errorf("%w: got %d angles for %d controls", ErrAngleCount, len(angles), k)
	}

	theta := cascadeAngles(angles)
	if k == 0 {
		rec.Record(axis.gate(theta[0], target))
		return nil
	}

	codes := grayValues(k)
	for i := range codes {
		rec.Record(axis.gate(theta[i], target))
		diff := codes[i] ^ codes[(i+1)%len(codes)]
		rec.Record(circuit.CX(controls[bits.TrailingZeros(uint(diff))], target))
	}
	return nil
}

// cascadeAngles converts pattern-indexed angles into cascade-position
// angles: theta = M * alpha / 2^k with M[i][j] = (-1)^popcount(gray(i) & j).
// Pattern j then sees the rotation sum_i (-1)^popcount(gray(i) & j) * theta[i],
// which is alpha[j].
func cascadeAngles(alpha []float64) []float64 {
	n := len(alpha)
	codes := grayValues(bits.Len(uint(n)) - 1)

	m := mat.NewDense(n, n, nil)
	for i := range n {
		for j := range n {
			if bits.OnesCount(uint(codes[i]&j))%2 == 0 {
				m.Set(i, j, 1)
			} else {
				m.Set(i, j, -1)
			}
		}
	}

	in := make([]float64, n)
	copy(in, alpha)
	var theta mat.VecDense
	theta.MulVec(m, mat.NewVecDense(n, in))
	theta.ScaleVec(1/float64(n), &theta)

	out := make([]float64, n)
	for i := range out {
		out[i] = theta.AtVec(i)
	}
	return out
}
