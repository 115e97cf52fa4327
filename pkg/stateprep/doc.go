// Package stateprep synthesizes gate sequences that prepare quantum states
// from |0...0>.
//
// Three preparers are provided:
//
//   - Mottonen: exact preparation of an arbitrary normalized amplitude
//     vector with uniformly controlled RY and RZ cascades. Real-valued
//     inputs skip the RZ pass entirely.
//   - BasisState: one X gate per wire whose bit is 1.
//   - Arbitrary: a trainable ansatz of 2*(2^n - 1) Pauli-word rotations.
//
// Wires are distinct non-negative integer labels. The first wire in the list
// is the most significant bit of the basis-state index.
//
// Every preparer validates its input before recording any gate and reports
// failures with the sentinel errors in errors.go, matched with errors.Is.
// All functions are pure and safe for concurrent use; the returned
// *circuit.Sequence belongs to the caller.
package stateprep
