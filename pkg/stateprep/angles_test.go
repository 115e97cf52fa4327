package stateprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaY(t *testing.T) {
	state := []complex128{
		complex(math.Sqrt(0.2), 0), 0, complex(math.Sqrt(0.5), 0), 0,
		0, 0, complex(math.Sqrt(0.2), 0), complex(math.Sqrt(0.1), 0),
	}
	tests := []struct {
		target int
		want   []float64
	}{
		{2, []float64{0, 0, 0, 1.23095942}},
		{1, []float64{2.01370737, 3.14159265}},
		{0, []float64{1.15927948}},
	}
	for _, tt := range tests {
		got := AlphaY(state, 3, tt.target)
		require.Len(t, got, len(tt.want))
		assert.InDeltaSlice(t, tt.want, got, 1e-8, "target %d", tt.target)
	}
}

func TestAlphaYZeroBlocks(t *testing.T) {
	// |11> only: every pattern without mass yields 0, the populated one pi.
	state := []complex128{0, 0, 0, 1}
	assert.InDeltaSlice(t, []float64{math.Pi}, AlphaY(state, 2, 0), 1e-12)
	assert.InDeltaSlice(t, []float64{0, math.Pi}, AlphaY(state, 2, 1), 1e-12)
}

func TestAlphaZ(t *testing.T) {
	r := 1 / math.Sqrt2
	state := []complex128{complex(r, 0), complex(0, r)}
	assert.InDeltaSlice(t, []float64{math.Pi / 2}, AlphaZ(state, 1, 0), 1e-12)

	// Phases 0, pi/2 | pi, -pi/2 on two qubits.
	half := 0.5
	state = []complex128{complex(half, 0), complex(0, half), complex(-half, 0), complex(0, -half)}
	assert.InDeltaSlice(t, []float64{0}, AlphaZ(state, 2, 0), 1e-12)
	assert.InDeltaSlice(t, []float64{math.Pi / 2, -math.Pi/2 - math.Pi}, AlphaZ(state, 2, 1), 1e-12)
}

func TestAlphaZRealPositiveIsZero(t *testing.T) {
	state := []complex128{0.5, 0.5, 0.5, 0.5}
	for target := range 2 {
		for _, a := range AlphaZ(state, 2, target) {
			assert.Zero(t, a)
		}
	}
}

func TestSignedLeafAngles(t *testing.T) {
	got := signedLeafAngles([]complex128{0.5, -0.5, 0, 0, -0.5, 0, 0, -0.5})
	assert.InDeltaSlice(t, []float64{-math.Pi / 2, 0, 2 * math.Pi, -math.Pi}, got, 1e-12)
}

func TestIsReal(t *testing.T) {
	assert.True(t, isReal([]complex128{1, -1, complex(0.5, 1e-15)}, 1e-12))
	assert.False(t, isReal([]complex128{1, complex(0, 1e-9)}, 1e-12))
}
