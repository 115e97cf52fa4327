package circuit

import "errors"

var (
	// ErrUnsupportedGate is returned when a gate has no QASM or lowering rule.
	ErrUnsupportedGate = errors.New("circuit: unsupported gate")

	// ErrMalformedQASM is returned when a QASM line cannot be parsed.
	ErrMalformedQASM = errors.New("circuit: malformed QASM")

	// ErrUnknownGateType is returned when a parsed QASM gate name is not one
	// of x, h, rx, ry, rz or cx.
	ErrUnknownGateType = errors.New("circuit: unknown gate type")

	// ErrBadPauliWord is returned when a Pauli word has letters outside
	// {I,X,Y,Z} or its length differs from the wire count.
	ErrBadPauliWord = errors.New("circuit: bad Pauli word")
)
