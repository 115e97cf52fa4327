package stateprep

import (
	"fmt"
	"slices"

	"qstateprep/pkg/circuit"
)

// Tensor is a dense row-major array of complex values with an explicit
// shape. It carries input whose dimensionality has to be checked, such as
// values parsed from nested brackets.
type Tensor struct {
	shape []int
	data  []complex128
}

// NewTensor wraps data with the given shape. Without a shape the tensor is
// one-dimensional.
func NewTensor(data []complex128, shape ...int) (*Tensor, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrTensorShape, shape)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrTensorShape, len(data), shape)
	}
	return &Tensor{shape: slices.Clone(shape), data: slices.Clone(data)}, nil
}

// RealTensor is NewTensor for real data.
func RealTensor(data []float64, shape ...int) (*Tensor, error) {
	c := make([]complex128, len(data))
	for i, v := range data {
		c[i] = complex(v, 0)
	}
	return NewTensor(c, shape...)
}

// Shape returns a copy of the tensor shape.
func (t *Tensor) Shape() []int { return slices.Clone(t.shape) }

// NDim returns the number of dimensions.
func (t *Tensor) NDim() int { return len(t.shape) }

// Len returns the number of values.
func (t *Tensor) Len() int { return len(t.data) }

// Data returns a copy of the values in row-major order.
func (t *Tensor) Data() []complex128 { return slices.Clone(t.data) }

// MottonenTensor is Mottonen for tensor input, which must be one-dimensional.
func MottonenTensor(t *Tensor, wires []int, opts ...Option) (*circuit.Sequence, error) {
	if t.NDim() != 1 {
		return nil, fmt.Errorf("%w: state vector has shape %v", ErrNotOneDimensional, t.shape)
	}
	return Mottonen(t.data, wires, opts...)
}

// BasisStateTensor is BasisState for tensor input, which must be
// one-dimensional with entries exactly 0 or 1.
func BasisStateTensor(t *Tensor, wires []int) (*circuit.Sequence, error) {
	if t.NDim() != 1 {
		return nil, fmt.Errorf("%w: basis state has shape %v", ErrNotOneDimensional, t.shape)
	}
	if err := validateWires(wires); err != nil {
		return nil, err
	}
	if len(t.data) != len(wires) {
		return nil, fmt.Errorf("%w: got %d bits for %d wires", ErrBasisLength, len(t.data), len(wires))
	}
	bits := make([]int, len(t.data))
	for i, v := range t.data {
		switch v {
		case 0:
		case 1:
			bits[i] = 1
		default:
			return nil, fmt.Errorf("%w: entry %d is %v", ErrBasisValue, i, v)
		}
	}
	return BasisState(bits, wires)
}

// ArbitraryTensor is Arbitrary for tensor input, which must be
// one-dimensional and real.
func ArbitraryTensor(t *Tensor, wires []int, opts ...Option) (*circuit.Sequence, error) {
	if t.NDim() != 1 {
		return nil, fmt.Errorf("%w: weights have shape %v", ErrNotOneDimensional, t.shape)
	}
	weights := make([]float64, len(t.data))
	for i, v := range t.data {
		if imag(v) != 0 {
			return nil, fmt.Errorf("%w: entry %d is %v", ErrComplexWeights, i, v)
		}
		weights[i] = real(v)
	}
	return Arbitrary(weights, wires, opts...)
}
