package stateprep

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qstateprep/pkg/circuit"
	"qstateprep/pkg/sim"
)

var (
	s2 = 1 / math.Sqrt2
	s8 = 1 / math.Sqrt(8)
)

// fidelityOn runs seq on a register of numQubits wires and returns the
// fidelity against target.
func fidelityOn(t *testing.T, seq *circuit.Sequence, numQubits int, target []complex128) float64 {
	t.Helper()
	state, err := sim.Run(seq, numQubits)
	require.NoError(t, err)
	return sim.Fidelity(state.Amplitudes, target)
}

func TestMottonenFidelity(t *testing.T) {
	tests := []struct {
		state  []complex128
		wires  []int
		target []complex128
	}{
		{[]complex128{1, 0}, []int{0}, []complex128{1, 0, 0, 0, 0, 0, 0, 0}},
		{[]complex128{1, 0}, []int{1}, []complex128{1, 0, 0, 0, 0, 0, 0, 0}},
		{[]complex128{1, 0}, []int{2}, []complex128{1, 0, 0, 0, 0, 0, 0, 0}},
		{[]complex128{0, 1}, []int{0}, []complex128{0, 0, 0, 0, 1, 0, 0, 0}},
		{[]complex128{0, 1}, []int{1}, []complex128{0, 0, 1, 0, 0, 0, 0, 0}},
		{[]complex128{0, 1}, []int{2}, []complex128{0, 1, 0, 0, 0, 0, 0, 0}},
		{[]complex128{0, 1, 0, 0}, []int{0, 1}, []complex128{0, 0, 1, 0, 0, 0, 0, 0}},
		{[]complex128{0, 0, 0, 1}, []int{0, 2}, []complex128{0, 0, 0, 0, 0, 1, 0, 0}},
		{[]complex128{0, 0, 0, 1}, []int{1, 2}, []complex128{0, 0, 0, 1, 0, 0, 0, 0}},
		{[]complex128{1, 0, 0, 0, 0, 0, 0, 0}, []int{0, 1, 2}, []complex128{1, 0, 0, 0, 0, 0, 0, 0}},
		{[]complex128{0, 0, 0, 0, 1i, 0, 0, 0}, []int{0, 1, 2}, []complex128{0, 0, 0, 0, 1i, 0, 0, 0}},
		{
			[]complex128{0.5, 0, 0, 0, 0.5, 0.5i, -0.5, 0}, []int{0, 1, 2},
			[]complex128{0.5, 0, 0, 0, 0.5, 0.5i, -0.5, 0},
		},
		{
			[]complex128{1.0 / 3, 0, 0, 0, 2i / 3, 2i / 3, 0, 0}, []int{0, 1, 2},
			[]complex128{1.0 / 3, 0, 0, 0, 2i / 3, 2i / 3, 0, 0},
		},
		{
			[]complex128{2.0 / 3, 0, 0, 0, 1.0 / 3, 0, 0, 2.0 / 3}, []int{0, 1, 2},
			[]complex128{2.0 / 3, 0, 0, 0, 1.0 / 3, 0, 0, 2.0 / 3},
		},
		{
			[]complex128{complex(s8, 0), complex(0, s8), complex(s8, 0), complex(0, -s8), complex(s8, 0), complex(s8, 0), complex(s8, 0), complex(0, s8)},
			[]int{0, 1, 2},
			[]complex128{complex(s8, 0), complex(0, s8), complex(s8, 0), complex(0, -s8), complex(s8, 0), complex(s8, 0), complex(s8, 0), complex(0, s8)},
		},
		{
			[]complex128{-0.17133152 - 0.18777771i, 0.00240643 - 0.40704011i, 0.18684538 - 0.36315606i, -0.07096948 + 0.104501i, 0.30357755 - 0.23831927i, -0.38735106 + 0.36075556i, 0.12351096 - 0.0539908i, 0.27942828 - 0.24810483i},
			[]int{0, 1, 2},
			[]complex128{-0.17133152 - 0.18777771i, 0.00240643 - 0.40704011i, 0.18684538 - 0.36315606i, -0.07096948 + 0.104501i, 0.30357755 - 0.23831927i, -0.38735106 + 0.36075556i, 0.12351096 - 0.0539908i, 0.27942828 - 0.24810483i},
		},
		{
			[]complex128{-0.29972867 + 0.04964242i, -0.28309418 + 0.09873227i, 0.00785743 - 0.37560696i, -0.3825148 + 0.00674343i, -0.03008048 + 0.31119167i, 0.03666351 - 0.15935903i, -0.25358831 + 0.35461265i, -0.32198531 + 0.33479292i},
			[]int{0, 1, 2},
			[]complex128{-0.29972867 + 0.04964242i, -0.28309418 + 0.09873227i, 0.00785743 - 0.37560696i, -0.3825148 + 0.00674343i, -0.03008048 + 0.31119167i, 0.03666351 - 0.15935903i, -0.25358831 + 0.35461265i, -0.32198531 + 0.33479292i},
		},
		{
			[]complex128{-0.39340123 + 0.05705932i, 0.1980509 - 0.24234781i, 0.27265585 - 0.0604432i, -0.42641249 + 0.25767258i, 0.40386614 - 0.39925987i, 0.03924761 + 0.13193724i, -0.06059103 - 0.01753834i, 0.21707136 - 0.15887973i},
			[]int{0, 1, 2},
			[]complex128{-0.39340123 + 0.05705932i, 0.1980509 - 0.24234781i, 0.27265585 - 0.0604432i, -0.42641249 + 0.25767258i, 0.40386614 - 0.39925987i, 0.03924761 + 0.13193724i, -0.06059103 - 0.01753834i, 0.21707136 - 0.15887973i},
		},
		{
			[]complex128{-1.33865287e-01 + 0.09802308i, 1.25060033e-01 + 0.16087698i, -4.14678130e-01 - 0.00774832i, 1.10121136e-01 + 0.37805482i, -3.21284864e-01 + 0.21521063i, -2.23121454e-04 + 0.28417422i, 5.64131205e-02 + 0.38135286i, 2.32694503e-01 + 0.41331133i},
			[]int{0, 1, 2},
			[]complex128{-1.33865287e-01 + 0.09802308i, 1.25060033e-01 + 0.16087698i, -4.14678130e-01 - 0.00774832i, 1.10121136e-01 + 0.37805482i, -3.21284864e-01 + 0.21521063i, -2.23121454e-04 + 0.28417422i, 5.64131205e-02 + 0.38135286i, 2.32694503e-01 + 0.41331133i},
		},
		{
			[]complex128{0.5, 0, 0, 0, 0.5i, 0, complex(0, s2), 0}, []int{0, 1, 2},
			[]complex128{0.5, 0, 0, 0, 0.5i, 0, complex(0, s2), 0},
		},
		{
			[]complex128{0.5, 0, 0.5i, complex(0, s2)}, []int{0, 1},
			[]complex128{0.5, 0, 0, 0, 0.5i, 0, complex(0, s2), 0},
		},
	}

	for i, tt := range tests {
		seq, err := Mottonen(tt.state, tt.wires)
		require.NoError(t, err, "case %d", i)
		assert.InDelta(t, 1.0, fidelityOn(t, seq, 3, tt.target), 1e-6, "case %d", i)
	}
}

func TestMottonenGHZ(t *testing.T) {
	ghz := []complex128{complex(s2, 0), 0, 0, 0, 0, 0, 0, complex(s2, 0)}
	seq, err := Mottonen(ghz, []int{0, 1, 2})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, fidelityOn(t, seq, 3, ghz), 1e-12)
	assert.Zero(t, seq.Count(circuit.TypeRZ))
	assert.Equal(t, 6, seq.Count(circuit.TypeCX))
}

func TestMottonenRZSkipped(t *testing.T) {
	tests := []struct {
		state []complex128
		n     int
	}{
		{[]complex128{0.5, 0.5, 0.5, 0.5}, 2},
		{[]complex128{1, 0, 0, 0}, 2},
		{[]complex128{0, 1, 0, 0}, 2},
		{[]complex128{0, 0, 0, 1}, 2},
		{[]complex128{0, 1, 0, 0, 0, 0, 0, 0}, 3},
		{[]complex128{0, 0, 0, 0, 1, 0, 0, 0}, 3},
		{[]complex128{2.0 / 3, 0, 0, 0, 1.0 / 3, 0, 0, 2.0 / 3}, 3},
		{[]complex128{0.5, 0, 0, 0, 0.5, 0.5, 0.5, 0}, 3},
		{[]complex128{1.0 / 3, 0, 0, 0, 2.0 / 3, 2.0 / 3, 0, 0}, 3},
		{[]complex128{0.5, -0.5, 0.5, 0.5}, 2},
		{[]complex128{-2.0 / 3, 0, 0, 0, 1.0 / 3, 0, 0, -2.0 / 3}, 3},
		{[]complex128{0.5, 0, 0, 0, -0.5, 0.5, 0.5, 0}, 3},
	}
	for _, tt := range tests {
		wires := make([]int, tt.n)
		for i := range wires {
			wires[i] = i
		}
		seq, err := Mottonen(tt.state, wires)
		require.NoError(t, err)

		assert.Equal(t, (1<<tt.n)-2, seq.Count(circuit.TypeCX), "%v", tt.state)
		assert.Equal(t, (1<<tt.n)-1, seq.Count(circuit.TypeRY), "%v", tt.state)
		assert.Zero(t, seq.Count(circuit.TypeRZ), "%v", tt.state)
		assert.InDelta(t, 1.0, fidelityOn(t, seq, tt.n, tt.state), 1e-12, "%v", tt.state)
	}
}

func TestMottonenSkipZeroCascadesOption(t *testing.T) {
	states := []struct {
		state []complex128
		n     int
	}{
		{[]complex128{1, 0, 0, 0}, 2},
		{[]complex128{0, 1, 0, 0, 0, 0, 0, 0}, 3},
		{[]complex128{0, 0, 0, 0, 1, 0, 0, 0}, 3},
		{[]complex128{1.0 / 3, 0, 0, 0, 2.0 / 3, 2.0 / 3, 0, 0}, 3},
	}
	for _, tt := range states {
		wires := make([]int, tt.n)
		for i := range wires {
			wires[i] = i
		}
		full, err := Mottonen(tt.state, wires)
		require.NoError(t, err)

		skipped, err := Mottonen(tt.state, wires, WithSkipZeroCascades())
		require.NoError(t, err)
		assert.Less(t, skipped.Count(circuit.TypeCX), full.Count(circuit.TypeCX), "%v", tt.state)
		assert.InDelta(t, 1.0, fidelityOn(t, skipped, tt.n, tt.state), 1e-12, "%v", tt.state)
	}
}

func TestMottonenSkipsZeroCascades(t *testing.T) {
	seq, err := Mottonen([]complex128{1, 0, 0, 0}, []int{0, 1}, WithSkipZeroCascades())
	require.NoError(t, err)
	assert.Zero(t, seq.Len())

	seq, err = Mottonen([]complex128{0, 0, 0, 0, 1, 0, 0, 0}, []int{0, 1, 2}, WithSkipZeroCascades())
	require.NoError(t, err)
	assert.Equal(t, []circuit.Gate{circuit.RY(math.Pi, 0)}, seq.Gates())

	// Non-zero cascades are untouched.
	ghz := []complex128{complex(s2, 0), 0, 0, 0, 0, 0, 0, complex(s2, 0)}
	seq, err = Mottonen(ghz, []int{0, 1, 2}, WithSkipZeroCascades())
	require.NoError(t, err)
	assert.Equal(t, 6, seq.Count(circuit.TypeCX))
}

func TestMottonenComplexAddsRZPass(t *testing.T) {
	state := []complex128{0.5, 0.5i, -0.5, -0.5i}
	seq, err := Mottonen(state, []int{0, 1})
	require.NoError(t, err)

	assert.Positive(t, seq.Count(circuit.TypeRZ))
	assert.Greater(t, seq.Count(circuit.TypeCX), 2)
	assert.InDelta(t, 1.0, fidelityOn(t, seq, 2, state), 1e-12)
}

func randomState(r *rand.Rand, n int, realOnly bool) []complex128 {
	state := make([]complex128, 1<<n)
	var norm float64
	for i := range state {
		re := r.NormFloat64()
		im := 0.0
		if !realOnly {
			im = r.NormFloat64()
		}
		state[i] = complex(re, im)
		norm += re*re + im*im
	}
	scale := complex(1/math.Sqrt(norm), 0)
	for i := range state {
		state[i] *= scale
	}
	return state
}

func TestMottonenRandomStates(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := 1; n <= 5; n++ {
		wires := make([]int, n)
		for i := range wires {
			wires[i] = i
		}
		for trial := 0; trial < 5; trial++ {
			for _, realOnly := range []bool{false, true} {
				state := randomState(r, n, realOnly)
				seq, err := Mottonen(state, wires)
				require.NoError(t, err)
				assert.InDelta(t, 1.0, fidelityOn(t, seq, n, state), 1e-9, "n=%d real=%v", n, realOnly)
				if realOnly {
					assert.Zero(t, seq.Count(circuit.TypeRZ))
					assert.Equal(t, (1<<n)-2, seq.Count(circuit.TypeCX))
				}
			}
		}
	}
}

func TestMottonenWireLabels(t *testing.T) {
	// Wire order, not label order, fixes significance.
	state := []complex128{0, 0, 0.6, 0.8}
	seq, err := Mottonen(state, []int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, seq.Wires())

	out, err := sim.Run(seq, 4)
	require.NoError(t, err)
	probs := out.GetQubitProbabilities()
	assert.InDelta(t, 1.0, probs[3].Prob1, 1e-12)
	assert.InDelta(t, 0.64, probs[1].Prob1, 1e-12)
}

func TestMottonenDeterministic(t *testing.T) {
	state := randomState(rand.New(rand.NewPCG(7, 7)), 4, false)
	wires := []int{0, 1, 2, 3}
	a, err := Mottonen(state, wires)
	require.NoError(t, err)
	b, err := Mottonen(state, wires)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestMottonenErrors(t *testing.T) {
	tests := []struct {
		name  string
		state []complex128
		wires []int
		want  error
	}{
		{"not normalized", []complex128{0.5, 0.5}, []int{0}, ErrNotNormalized},
		{"not normalized complex", []complex128{2.0 / 3, 0, 2i / 3, -2.0 / 3}, []int{0, 1}, ErrNotNormalized},
		{"too long for norm", []complex128{0, 2, 0, 0}, []int{0, 1}, ErrNotNormalized},
		{"three for two wires", []complex128{0, 1, 0}, []int{0, 1}, ErrStateShape},
		{"five for one wire", []complex128{0, 1, 0, 0, 0}, []int{0}, ErrStateShape},
		{"two for two wires", []complex128{0, 1}, []int{0, 1}, ErrStateShape},
		{"no wires", []complex128{1}, nil, ErrNoWires},
		{"duplicate wires", []complex128{1, 0, 0, 0}, []int{2, 2}, ErrDuplicateWire},
		{"negative wire", []complex128{1, 0}, []int{-1}, ErrInvalidWire},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Mottonen(tt.state, tt.wires)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, seq)
		})
	}
}

func TestMottonenNormTolerance(t *testing.T) {
	state := []complex128{complex(math.Sqrt(0.5001), 0), complex(math.Sqrt(0.5), 0)}
	_, err := Mottonen(state, []int{0})
	assert.ErrorIs(t, err, ErrNotNormalized)

	_, err = Mottonen(state, []int{0}, WithNormTolerance(1e-3))
	assert.NoError(t, err)

	assert.Panics(t, func() { WithNormTolerance(-1) })
	assert.Panics(t, func() { WithAngleTolerance(math.NaN()) })
}

func TestMottonenAngleTolerance(t *testing.T) {
	// A tiny imaginary part counts as real under a loose tolerance.
	state := []complex128{complex(s2, 0), complex(s2, 1e-9)}
	seq, err := Mottonen(state, []int{0})
	require.NoError(t, err)
	assert.Positive(t, seq.Count(circuit.TypeRZ))

	seq, err = Mottonen(state, []int{0}, WithAngleTolerance(1e-6))
	require.NoError(t, err)
	assert.Zero(t, seq.Count(circuit.TypeRZ))
}

func TestMottonenLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Mottonen([]complex128{0.5, 0.5, 0.5, 0.5}, []int{0, 1}, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "recording cascade")
	assert.Contains(t, buf.String(), "RZ pass skipped")

	assert.NotContains(t, buf.String(), "zero cascade skipped")

	buf.Reset()
	_, err = Mottonen([]complex128{1, 0, 0, 0}, []int{0, 1}, WithLogger(logger))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "zero cascade skipped")
	assert.Contains(t, buf.String(), "recording cascade")

	buf.Reset()
	_, err = Mottonen([]complex128{1, 0, 0, 0}, []int{0, 1}, WithLogger(logger), WithSkipZeroCascades())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "zero cascade skipped")
	assert.NotContains(t, buf.String(), "recording cascade")
}
