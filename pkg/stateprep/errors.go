package stateprep

import "errors"

var (
	// ErrStateShape indicates an amplitude vector whose length is not
	// 2^len(wires).
	ErrStateShape = errors.New("stateprep: state vector must be of length 2^len(wires)")

	// ErrNotOneDimensional indicates tensor input with more or fewer than one
	// dimension.
	ErrNotOneDimensional = errors.New("stateprep: input must be one-dimensional")

	// ErrNotNormalized indicates an amplitude vector whose squared norm is
	// not within tolerance of 1.
	ErrNotNormalized = errors.New("stateprep: state vector must have unit norm")

	// ErrBasisLength indicates a basis state with a different length than
	// the wire list.
	ErrBasisLength = errors.New("stateprep: basis state must be of length len(wires)")

	// ErrBasisValue indicates a basis state entry other than 0 or 1.
	ErrBasisValue = errors.New("stateprep: basis state must only consist of 0s and 1s")

	// ErrWeightsShape indicates a weight vector whose length is not
	// 2*(2^len(wires) - 1).
	ErrWeightsShape = errors.New("stateprep: weights must be of length 2*(2^len(wires)-1)")

	// ErrNoWires indicates an empty wire list.
	ErrNoWires = errors.New("stateprep: at least one wire is required")

	// ErrDuplicateWire indicates a wire label that appears more than once.
	ErrDuplicateWire = errors.New("stateprep: wires must be distinct")

	// ErrInvalidWire indicates a negative wire label.
	ErrInvalidWire = errors.New("stateprep: wire labels must be non-negative")

	// ErrTooManyWires indicates more wires than a dense amplitude vector can
	// index.
	ErrTooManyWires = errors.New("stateprep: too many wires")

	// ErrAngleCount indicates a multiplexer angle table whose length is not
	// 2^len(controls).
	ErrAngleCount = errors.New("stateprep: angle table must be of length 2^len(controls)")

	// ErrUnknownAxis indicates a rotation axis other than AxisY or AxisZ.
	ErrUnknownAxis = errors.New("stateprep: unknown rotation axis")

	// ErrComplexWeights indicates ansatz weights with a non-zero imaginary part.
	ErrComplexWeights = errors.New("stateprep: weights must be real")

	// ErrTensorShape indicates tensor data that does not fill its shape.
	ErrTensorShape = errors.New("stateprep: tensor data does not match shape")
)
