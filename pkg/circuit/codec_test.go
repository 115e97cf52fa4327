package circuit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	seq := NewSequence()
	seq.Record(RY(1.2309594173407747, 0))
	seq.Record(CX(0, 1))
	seq.Record(X(2))
	seq.Record(PauliRot(-0.25, "XYI", []int{0, 1, 2}))

	env := NewEnvelope("mottonen", seq, 3)
	_, err := uuid.Parse(env.ID)
	require.NoError(t, err)

	data, err := MarshalEnvelope(env)
	require.NoError(t, err)

	decoded, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env.ID, decoded.ID)
	assert.Equal(t, "mottonen", decoded.Preparer)
	assert.Equal(t, 3, decoded.NumQubits)
	assert.True(t, seq.Equal(decoded.Sequence()))
}

func TestEnvelopeIDsAreUnique(t *testing.T) {
	seq := NewSequence()
	a := NewEnvelope("basis", seq, 1)
	b := NewEnvelope("basis", seq, 1)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUnmarshalEnvelopeErrors(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte{0xc1})
	assert.Error(t, err)

	data, err := msgpack.Marshal(&Envelope{ID: "not-a-uuid"})
	require.NoError(t, err)
	_, err = UnmarshalEnvelope(data)
	assert.ErrorContains(t, err, "invalid envelope id")
}

func TestUnmarshalEnvelopeRejectsBadPauliWords(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
	}{
		{"empty word", PauliRot(1, "", nil)},
		{"short word", PauliRot(1, "X", []int{0, 1})},
		{"long word", PauliRot(1, "XYZ", []int{0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence()
			seq.Record(RY(0.5, 0))
			seq.Record(tt.gate)

			data, err := MarshalEnvelope(NewEnvelope("arbitrary", seq, 2))
			require.NoError(t, err)

			_, err = UnmarshalEnvelope(data)
			assert.ErrorIs(t, err, ErrBadPauliWord)
		})
	}
}
