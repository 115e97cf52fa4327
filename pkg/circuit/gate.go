package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// Gate types produced by the preparers and by Lower.
const (
	TypeX        = "X"
	TypeH        = "H"
	TypeRX       = "RX"
	TypeRY       = "RY"
	TypeRZ       = "RZ"
	TypeCX       = "CX"
	TypePauliRot = "PAULIROT"
)

// Gate represents a single operation in a gate sequence.
type Gate struct {
	Type    string    `msgpack:"type"`
	Target  int       `msgpack:"target"`           // -1 for Pauli rotations
	Control int       `msgpack:"control"`          // -1 if not a controlled gate
	Wires   []int     `msgpack:"wires,omitempty"`  // wires spanned by a Pauli rotation, in word order
	Word    string    `msgpack:"word,omitempty"`   // Pauli word over {I,X,Y,Z}, one letter per wire
	Params  []float64 `msgpack:"params,omitempty"` // rotation angle for parameterized gates
}

// X returns a bit-flip gate on wire.
func X(wire int) Gate {
	return Gate{Type: TypeX, Target: wire, Control: -1}
}

// H returns a Hadamard gate on wire.
func H(wire int) Gate {
	return Gate{Type: TypeH, Target: wire, Control: -1}
}

// RX returns an X-axis rotation by theta on wire.
func RX(theta float64, wire int) Gate {
	return Gate{Type: TypeRX, Target: wire, Control: -1, Params: []float64{theta}}
}

// RY returns a Y-axis rotation by theta on wire.
func RY(theta float64, wire int) Gate {
	return Gate{Type: TypeRY, Target: wire, Control: -1, Params: []float64{theta}}
}

// RZ returns a Z-axis rotation by theta on wire.
func RZ(theta float64, wire int) Gate {
	return Gate{Type: TypeRZ, Target: wire, Control: -1, Params: []float64{theta}}
}

// CX returns a controlled-NOT gate.
func CX(control, target int) Gate {
	return Gate{Type: TypeCX, Target: target, Control: control}
}

// PauliRot returns exp(-i*theta/2 * P) where P is the Pauli word acting on
// wires. The word must have one letter per wire.
func PauliRot(theta float64, word string, wires []int) Gate {
	return Gate{
		Type:    TypePauliRot,
		Target:  -1,
		Control: -1,
		Wires:   slices.Clone(wires),
		Word:    word,
		Params:  []float64{theta},
	}
}

// Angle returns the rotation angle of a parameterized gate, or 0.
func (g Gate) Angle() float64 {
	if len(g.Params) == 0 {
		return 0
	}
	return g.Params[0]
}

// IsRotation reports whether the gate carries an angle.
func (g Gate) IsRotation() bool {
	switch g.Type {
	case TypeRX, TypeRY, TypeRZ, TypePauliRot:
		return true
	}
	return false
}

// Qubits returns every wire the gate acts on.
func (g Gate) Qubits() []int {
	if g.Type == TypePauliRot {
		return slices.Clone(g.Wires)
	}
	if g.Control >= 0 {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// references reports whether the gate acts on the given wire.
func (g Gate) references(wire int) bool {
	if g.Target == wire || g.Control == wire {
		return true
	}
	return slices.Contains(g.Wires, wire)
}

// Equal reports whether two gates are structurally identical.
func (g Gate) Equal(o Gate) bool {
	return g.Type == o.Type &&
		g.Target == o.Target &&
		g.Control == o.Control &&
		g.Word == o.Word &&
		slices.Equal(g.Wires, o.Wires) &&
		slices.Equal(g.Params, o.Params)
}

func (g Gate) String() string {
	switch {
	case g.Type == TypePauliRot:
		ws := make([]string, len(g.Wires))
		for i, w := range g.Wires {
			ws[i] = fmt.Sprintf("%d", w)
		}
		return fmt.Sprintf("PauliRot(%s, %s, wires=[%s])", FormatParam(g.Angle()), g.Word, strings.Join(ws, ","))
	case g.Control >= 0:
		return fmt.Sprintf("%s(%d, %d)", g.Type, g.Control, g.Target)
	case g.IsRotation():
		return fmt.Sprintf("%s(%s, %d)", g.Type, FormatParam(g.Angle()), g.Target)
	default:
		return fmt.Sprintf("%s(%d)", g.Type, g.Target)
	}
}
