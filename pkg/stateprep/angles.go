package stateprep

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// AlphaY returns the RY angles of the uniformly controlled rotation on
// qubit target (0 is the most significant) of a numQubits-qubit state.
//
// Entry j belongs to control pattern j, the value of the target more
// significant bits. It is 2*asin(sqrt(p1/p)) where p is the probability
// mass of the basis states matching j and p1 the part of it with the target
// bit set. Patterns with no mass get angle 0.
func AlphaY(amplitudes []complex128, numQubits, target int) []float64 {
	probs := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}

	bit := 1 << (numQubits - target - 1)
	angles := make([]float64, 1<<target)
	for j := range angles {
		base := j * 2 * bit
		p1 := floats.Sum(probs[base+bit : base+2*bit])
		p := floats.Sum(probs[base:base+bit]) + p1
		if p > 0 {
			angles[j] = 2 * math.Asin(math.Sqrt(math.Min(1, p1/p)))
		}
	}
	return angles
}

// AlphaZ returns the RZ angles of the uniformly controlled rotation on
// qubit target. Entry j is the mean phase difference between the target-bit
// 1 and target-bit 0 halves of the block selected by control pattern j.
func AlphaZ(amplitudes []complex128, numQubits, target int) []float64 {
	phases := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		phases[i] = cmplx.Phase(a)
	}

	bit := 1 << (numQubits - target - 1)
	angles := make([]float64, 1<<target)
	for j := range angles {
		base := j * 2 * bit
		diff := floats.Sum(phases[base+bit:base+2*bit]) - floats.Sum(phases[base:base+bit])
		angles[j] = diff / float64(bit)
	}
	return angles
}

// signedLeafAngles returns RY angles for the least significant qubit of a
// real-valued state. Each pair (a[2j], a[2j+1]) is reached exactly, sign
// included, by RY(2*atan2(a[2j+1], a[2j])) applied to the pair's norm.
func signedLeafAngles(amplitudes []complex128) []float64 {
	angles := make([]float64, len(amplitudes)/2)
	for j := range angles {
		a0, a1 := real(amplitudes[2*j]), real(amplitudes[2*j+1])
		if a0 == 0 && a1 == 0 {
			continue
		}
		angles[j] = 2 * math.Atan2(a1, a0)
	}
	return angles
}

// isReal reports whether every imaginary part is within tol of zero.
func isReal(amplitudes []complex128, tol float64) bool {
	for _, a := range amplitudes {
		if math.Abs(imag(a)) > tol {
			return false
		}
	}
	return true
}
