package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerPauliRot(t *testing.T) {
	seq := NewSequence()
	seq.Record(X(2))
	seq.Record(PauliRot(0.4, "YIX", []int{0, 1, 2}))

	lowered, err := Lower(seq)
	require.NoError(t, err)

	want := []Gate{
		X(2),
		RX(math.Pi/2, 0),
		H(2),
		CX(0, 2),
		RZ(0.4, 2),
		CX(0, 2),
		RX(-math.Pi/2, 0),
		H(2),
	}
	assert.Equal(t, want, lowered.Gates())
	assert.Equal(t, 0, lowered.Count(TypePauliRot))
}

func TestLowerSingleLetter(t *testing.T) {
	seq := NewSequence()
	seq.Record(PauliRot(1.1, "Z", []int{3}))

	lowered, err := Lower(seq)
	require.NoError(t, err)
	assert.Equal(t, []Gate{RZ(1.1, 3)}, lowered.Gates())
}

func TestLowerIdentityWord(t *testing.T) {
	seq := NewSequence()
	seq.Record(PauliRot(1.1, "II", []int{0, 1}))

	lowered, err := Lower(seq)
	require.NoError(t, err)
	assert.Equal(t, 0, lowered.Len())
}

func TestLowerBadWord(t *testing.T) {
	for _, g := range []Gate{
		PauliRot(1, "XQ", []int{0, 1}),
		PauliRot(1, "X", []int{0, 1}),
	} {
		seq := NewSequence()
		seq.Record(g)
		_, err := Lower(seq)
		assert.ErrorIs(t, err, ErrBadPauliWord)
	}
}
