package circuit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Envelope is the binary export format of a synthesized gate sequence.
type Envelope struct {
	ID        string `msgpack:"id"`
	Preparer  string `msgpack:"preparer"`
	NumQubits int    `msgpack:"num_qubits"`
	Gates     []Gate `msgpack:"gates"`
}

// NewEnvelope wraps seq in an envelope with a fresh identifier.
func NewEnvelope(preparer string, seq *Sequence, numQubits int) *Envelope {
	return &Envelope{
		ID:        uuid.New().String(),
		Preparer:  preparer,
		NumQubits: numQubits,
		Gates:     seq.Gates(),
	}
}

// Sequence rebuilds the gate sequence held by the envelope.
func (e *Envelope) Sequence() *Sequence {
	seq := NewSequence()
	for _, g := range e.Gates {
		seq.Record(g)
	}
	return seq
}

// MarshalEnvelope encodes an envelope as msgpack.
func MarshalEnvelope(e *Envelope) ([]byte, error) {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes a msgpack envelope and checks its identifier
// and the shape of every Pauli rotation it carries.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		return nil, fmt.Errorf("invalid envelope id %q: %w", e.ID, err)
	}
	for i, g := range e.Gates {
		if g.Type == TypePauliRot && (g.Word == "" || len(g.Word) != len(g.Wires)) {
			return nil, fmt.Errorf("%w: gate %d has word %q on %d wires", ErrBadPauliWord, i, g.Word, len(g.Wires))
		}
	}
	return &e, nil
}
