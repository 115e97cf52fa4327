package circuit

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
	pauliRotRegex        = regexp.MustCompile(`^//\s*paulirot\s*\(\s*(` + paramPattern + `)\s*\)\s+([IXYZ]+)\s+(q\[\d+\](?:\s*,\s*q\[\d+\])*)$`)
	pauliRotEndRegex     = regexp.MustCompile(`^//\s*end\s+paulirot$`)
	wireRefRegex         = regexp.MustCompile(`q\[(\d+)\]`)
)

// ToQASM generates QASM 2.0 output from a gate sequence. The register is
// sized to the larger of numQubits and the highest wire used.
//
// QASM has no Pauli-word rotation, so each one is written as its lowered
// gates between a "// paulirot(theta) WORD q[..]" marker and a
// "// end paulirot" comment. ParseQASM restores the rotation from the marker.
func ToQASM(seq *Sequence, numQubits int) (string, error) {
	maxQubit := -1
	for _, gate := range seq.gates {
		for _, q := range gate.Qubits() {
			maxQubit = max(maxQubit, q)
		}
	}
	numQubits = max(maxQubit+1, numQubits, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", numQubits)

	for _, gate := range seq.gates {
		if gate.Type != TypePauliRot {
			if err := writeGate(&sb, gate); err != nil {
				return "", err
			}
			continue
		}

		refs := make([]string, len(gate.Wires))
		for i, w := range gate.Wires {
			refs[i] = fmt.Sprintf("q[%d]", w)
		}
		fmt.Fprintf(&sb, "// paulirot(%s) %s %s\n", FormatParam(gate.Angle()), gate.Word, strings.Join(refs, ", "))

		lowered := NewSequence()
		if err := lowerPauliRot(lowered, gate); err != nil {
			return "", err
		}
		for _, g := range lowered.gates {
			if err := writeGate(&sb, g); err != nil {
				return "", err
			}
		}
		sb.WriteString("// end paulirot\n")
	}

	return sb.String(), nil
}

func writeGate(sb *strings.Builder, gate Gate) error {
	switch gate.Type {
	case TypeX, TypeH:
		fmt.Fprintf(sb, "%s q[%d];\n", strings.ToLower(gate.Type), gate.Target)
	case TypeRX, TypeRY, TypeRZ:
		fmt.Fprintf(sb, "%s(%s) q[%d];\n", strings.ToLower(gate.Type), FormatParam(gate.Angle()), gate.Target)
	case TypeCX:
		fmt.Fprintf(sb, "cx q[%d], q[%d];\n", gate.Control, gate.Target)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGate, gate.Type)
	}
	return nil
}

// ParseQASM parses QASM text into a gate sequence and returns it together
// with the declared register size (0 when no qreg line is present).
func ParseQASM(qasm string) (*Sequence, int, error) {
	seq := NewSequence()
	numQubits := 0
	inPauliRot := false

	scanner := bufio.NewScanner(strings.NewReader(qasm))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if inPauliRot {
			if pauliRotEndRegex.MatchString(line) {
				inPauliRot = false
			}
			continue
		}
		if line == "" {
			continue
		}
		if matches := pauliRotRegex.FindStringSubmatch(line); matches != nil {
			g, err := parsePauliRot(matches)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %w", lineNo, err)
			}
			seq.Record(g)
			inPauliRot = true
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				numQubits, _ = strconv.Atoi(matches[2])
			}
			continue
		}

		g, err := parseGateLine(line)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		seq.Record(g)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedQASM, err)
	}
	if inPauliRot {
		return nil, 0, fmt.Errorf("%w: unterminated paulirot block", ErrMalformedQASM)
	}

	return seq, numQubits, nil
}

func parseGateLine(line string) (Gate, error) {
	// Two-qubit gates: cx
	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		control, _ := strconv.Atoi(matches[2])
		target, _ := strconv.Atoi(matches[3])
		if gateType != TypeCX {
			return Gate{}, fmt.Errorf("%w: %s", ErrUnknownGateType, matches[1])
		}
		return CX(control, target), nil
	}

	// Single-qubit parameterized gates: rx, ry, rz
	if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		param, ok := ParseParamExpr(matches[2])
		if !ok {
			return Gate{}, fmt.Errorf("%w: bad parameter %q", ErrMalformedQASM, matches[2])
		}
		target, _ := strconv.Atoi(matches[3])
		switch gateType {
		case TypeRX:
			return RX(param, target), nil
		case TypeRY:
			return RY(param, target), nil
		case TypeRZ:
			return RZ(param, target), nil
		}
		return Gate{}, fmt.Errorf("%w: %s", ErrUnknownGateType, matches[1])
	}

	// Single-qubit gates: x, h
	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		target, _ := strconv.Atoi(matches[2])
		switch gateType {
		case TypeX:
			return X(target), nil
		case TypeH:
			return H(target), nil
		}
		return Gate{}, fmt.Errorf("%w: %s", ErrUnknownGateType, matches[1])
	}

	return Gate{}, fmt.Errorf("%w: %q", ErrMalformedQASM, line)
}

func parsePauliRot(matches []string) (Gate, error) {
	theta, ok := ParseParamExpr(matches[1])
	if !ok {
		return Gate{}, fmt.Errorf("%w: bad parameter %q", ErrMalformedQASM, matches[1])
	}
	word := matches[2]
	var wires []int
	for _, ref := range wireRefRegex.FindAllStringSubmatch(matches[3], -1) {
		w, _ := strconv.Atoi(ref[1])
		wires = append(wires, w)
	}
	if len(wires) != len(word) {
		return Gate{}, fmt.Errorf("%w: word %q on %d wires", ErrBadPauliWord, word, len(wires))
	}
	return PauliRot(theta, word, wires), nil
}
