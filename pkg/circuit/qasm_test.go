package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToQASM(t *testing.T) {
	seq := NewSequence()
	seq.Record(X(0))
	seq.Record(RY(math.Pi/2, 1))
	seq.Record(CX(0, 1))
	seq.Record(RZ(0.125, 1))

	got, err := ToQASM(seq, 0)
	require.NoError(t, err)

	want := "OPENQASM 2.0;\n" +
		"include \"qelib1.inc\";\n\n" +
		"qreg q[2];\n\n" +
		"x q[0];\n" +
		"ry(pi/2) q[1];\n" +
		"cx q[0], q[1];\n" +
		"rz(0.125) q[1];\n"
	assert.Equal(t, want, got)
}

func TestToQASMRegisterSize(t *testing.T) {
	seq := NewSequence()
	seq.Record(X(0))

	got, err := ToQASM(seq, 4)
	require.NoError(t, err)
	assert.Contains(t, got, "qreg q[4];")

	got, err = ToQASM(NewSequence(), 0)
	require.NoError(t, err)
	assert.Contains(t, got, "qreg q[1];")
}

func TestToQASMUnsupportedGate(t *testing.T) {
	seq := NewSequence()
	seq.Record(Gate{Type: "CCX", Target: 2, Control: 0})

	_, err := ToQASM(seq, 3)
	assert.ErrorIs(t, err, ErrUnsupportedGate)
}

func TestToQASMPauliRotMarker(t *testing.T) {
	seq := NewSequence()
	seq.Record(PauliRot(math.Pi/2, "XY", []int{0, 1}))

	got, err := ToQASM(seq, 2)
	require.NoError(t, err)

	want := "OPENQASM 2.0;\n" +
		"include \"qelib1.inc\";\n\n" +
		"qreg q[2];\n\n" +
		"// paulirot(pi/2) XY q[0], q[1]\n" +
		"h q[0];\n" +
		"rx(pi/2) q[1];\n" +
		"cx q[0], q[1];\n" +
		"rz(pi/2) q[1];\n" +
		"cx q[0], q[1];\n" +
		"h q[0];\n" +
		"rx(-pi/2) q[1];\n" +
		"// end paulirot\n"
	assert.Equal(t, want, got)
}

func TestQASMRoundTrip(t *testing.T) {
	seq := NewSequence()
	seq.Record(RY(1.2309594173407747, 0))
	seq.Record(CX(0, 1))
	seq.Record(RY(-0.3, 1))
	seq.Record(RZ(3*math.Pi/4, 2))
	seq.Record(H(2))
	seq.Record(RX(1e-05, 0))
	seq.Record(PauliRot(0.7, "IXX", []int{0, 1, 2}))
	seq.Record(X(1))

	text, err := ToQASM(seq, 3)
	require.NoError(t, err)

	parsed, n, err := ParseQASM(text)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, seq.Equal(parsed), "round trip changed the sequence:\n%s", text)
}

func TestParseQASM(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

// leading comment
x q[0];
ry(pi/4) q[1];
cx q[1], q[2];
barrier q[0], q[1], q[2];
rz(-2*pi/3) q[2]`

	seq, n, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Equal(t, 4, seq.Len())

	assert.Equal(t, X(0), seq.At(0))
	assert.Equal(t, TypeRY, seq.At(1).Type)
	assert.InDelta(t, math.Pi/4, seq.At(1).Angle(), 1e-15)
	assert.Equal(t, CX(1, 2), seq.At(2))
	assert.InDelta(t, -2*math.Pi/3, seq.At(3).Angle(), 1e-15)
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want error
	}{
		{"unknown single", "qreg q[1];\ns q[0];", ErrUnknownGateType},
		{"unknown two", "qreg q[2];\ncz q[0], q[1];", ErrUnknownGateType},
		{"unknown param", "qreg q[1];\nu1(0.5) q[0];", ErrUnknownGateType},
		{"garbage", "qreg q[1];\nthis is not qasm", ErrMalformedQASM},
		{"three qubit", "ccx q[0], q[1], q[2];", ErrMalformedQASM},
		{"unterminated", "// paulirot(0.5) XX q[0], q[1]\nh q[0];", ErrMalformedQASM},
		{"word length", "// paulirot(0.5) XXX q[0], q[1]\n// end paulirot", ErrBadPauliWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseQASM(tt.qasm)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"1e-3", 1e-3, true},
		{"2.5E+3", 2500, true},
		{".5e-1", 0.05, true},
		{"pi", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi/2", -math.Pi / 2, true},
		{"PI", math.Pi, true},
		{"pi/0", 0, false},
		{"", 0, false},
		{"tau", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseParamExpr(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestFormatParamRoundTrip(t *testing.T) {
	values := []float64{
		0, 1, -1, 0.1, 1.2309594173407747, 2.0137073708685356, 1e-17,
		math.Pi, -math.Pi, math.Pi / 2, math.Pi / 3, 2 * math.Pi / 3, 3 * math.Pi / 4,
	}
	for _, v := range values {
		s := FormatParam(v)
		got, ok := ParseParamExpr(s)
		require.True(t, ok, "cannot parse %q", s)
		assert.Equal(t, v, got, "%q", s)
	}
	assert.Equal(t, "pi/2", FormatParam(math.Pi/2))
	assert.Equal(t, "-pi/4", FormatParam(-math.Pi/4))
	assert.Equal(t, "0.3", FormatParam(0.3))
	assert.Equal(t, "1e-17", FormatParam(1e-17))
}

func TestFormatParamPiRatios(t *testing.T) {
	for _, r := range piRatios {
		for _, v := range []float64{r.value(), -r.value()} {
			s := FormatParam(v)
			assert.Contains(t, s, "pi")
			got, ok := ParseParamExpr(s)
			require.True(t, ok, "cannot parse %q", s)
			assert.Equal(t, v, got, "%q", s)
		}
	}
	assert.Equal(t, "2*pi", FormatParam(piRatio{2, 1}.value()))
	assert.Equal(t, "-5*pi/6", FormatParam(-piRatio{5, 6}.value()))
}

func TestParseQASMExponentAngles(t *testing.T) {
	seq := NewSequence()
	seq.Record(RY(1e-17, 0))
	seq.Record(RZ(-2.5e-9, 1))
	seq.Record(PauliRot(3e-20, "XY", []int{0, 1}))

	text, err := ToQASM(seq, 2)
	require.NoError(t, err)
	assert.Contains(t, text, "ry(1e-17) q[0];")
	assert.Contains(t, text, "rz(-2.5e-09) q[1];")

	parsed, numQubits, err := ParseQASM(text)
	require.NoError(t, err)
	assert.Equal(t, 2, numQubits)
	assert.True(t, seq.Equal(parsed))
}
