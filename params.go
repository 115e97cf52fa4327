package main

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"qstateprep/pkg/circuit"
	"qstateprep/pkg/stateprep"
)

var errEmptyInput = errors.New("input is empty")

// parseTensor parses a target typed into the input panel. Values are comma
// or newline separated; brackets nest, so "[[0, 1]]" has shape (1, 2).
// Entries are complex expressions accepted by parseScalar.
func parseTensor(input string) (*stateprep.Tensor, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errEmptyInput
	}
	if !strings.HasPrefix(input, "[") {
		fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == '\n' })
		input = "[" + strings.Join(fields, ",") + "]"
	}

	tp := &tensorParser{s: input}
	node, err := tp.value()
	if err != nil {
		return nil, err
	}
	tp.skipSpace()
	if tp.pos != len(tp.s) {
		return nil, fmt.Errorf("unexpected %q after closing bracket", tp.s[tp.pos:])
	}

	shape, data, err := node.flatten()
	if err != nil {
		return nil, err
	}
	return stateprep.NewTensor(data, shape...)
}

type tensorNode struct {
	scalar   complex128
	isList   bool
	children []*tensorNode
}

// flatten returns the shape and row-major values of a node. Sibling lists
// must agree in shape.
func (n *tensorNode) flatten() ([]int, []complex128, error) {
	if !n.isList {
		return nil, []complex128{n.scalar}, nil
	}
	if len(n.children) == 0 {
		return []int{0}, nil, nil
	}

	var inner []int
	var data []complex128
	for i, child := range n.children {
		shape, values, err := child.flatten()
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			inner = shape
		} else if !equalShape(inner, shape) || child.isList != n.children[0].isList {
			return nil, nil, fmt.Errorf("ragged brackets: shapes %v and %v", inner, shape)
		}
		data = append(data, values...)
	}
	return append([]int{len(n.children)}, inner...), data, nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type tensorParser struct {
	s   string
	pos int
}

func (p *tensorParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' || p.s[p.pos] == '\r') {
		p.pos++
	}
}

func (p *tensorParser) value() (*tensorNode, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if p.s[p.pos] != '[' {
		return p.scalar()
	}

	p.pos++
	node := &tensorNode{isList: true}
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ']' {
		p.pos++
		return node, nil
	}
	for {
		child, err := p.value()
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)

		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, fmt.Errorf("missing closing bracket")
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return node, nil
		default:
			return nil, fmt.Errorf("unexpected %q in list", p.s[p.pos])
		}
	}
}

// scalar reads up to the next top-level comma or closing bracket.
func (p *tensorParser) scalar() (*tensorNode, error) {
	start := p.pos
	depth := 0
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if depth == 0 && (c == ',' || c == ']' || c == '[') {
			break
		}
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		p.pos++
	}
	text := strings.TrimSpace(p.s[start:p.pos])
	if text == "" {
		return nil, fmt.Errorf("empty entry at column %d", start+1)
	}
	v, err := parseScalar(text)
	if err != nil {
		return nil, err
	}
	return &tensorNode{scalar: v}, nil
}

// parseScalar parses one complex entry.
//
// Supported formats:
//   - Everything circuit.ParseParamExpr accepts: "0.5", "1e-3", "pi/4", "-3*pi/4"
//   - Fractions: "1/2", "1/sqrt(3)"
//   - Imaginary parts: "0.5i", "-1j/2", "i/sqrt(8)", "1+1i"
//   - Square roots and parentheses: "sqrt(2)/2", "(1-i)/2"
func parseScalar(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	if v, ok := circuit.ParseParamExpr(s); ok {
		return complex(v, 0), nil
	}

	p := &exprParser{s: strings.ToLower(s)}
	v, err := p.expr()
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	if p.peek() != 0 {
		return 0, fmt.Errorf("%q: unexpected %q", s, p.s[p.pos:])
	}
	return v, nil
}

// exprParser evaluates +, -, *, / over numbers, pi, i/j and sqrt(...).
// Juxtaposition multiplies, so "2pi" and "0.5i" work.
type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) peek() byte {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprParser) expr() (complex128, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++
		r, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += r
		} else {
			v -= r
		}
	}
}

func (p *exprParser) term() (complex128, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		c := p.peek()
		switch {
		case c == '*':
			p.pos++
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= r
		case c == '/':
			p.pos++
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= r
		case c == '(' || isLetter(c):
			r, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= r
		default:
			return v, nil
		}
	}
}

func (p *exprParser) unary() (complex128, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.atom()
}

func (p *exprParser) atom() (complex128, error) {
	c := p.peek()
	switch {
	case c == 0:
		return 0, fmt.Errorf("unexpected end of expression")
	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case isDigit(c) || c == '.':
		return p.number()
	case isLetter(c):
		start := p.pos
		for p.pos < len(p.s) && isLetter(p.s[p.pos]) {
			p.pos++
		}
		switch name := p.s[start:p.pos]; name {
		case "pi":
			return math.Pi, nil
		case "i", "j":
			return 1i, nil
		case "sqrt":
			if p.peek() != '(' {
				return 0, fmt.Errorf("sqrt needs parentheses")
			}
			arg, err := p.atom()
			if err != nil {
				return 0, err
			}
			return cmplx.Sqrt(arg), nil
		default:
			return 0, fmt.Errorf("unknown name %q", name)
		}
	}
	return 0, fmt.Errorf("unexpected %q", c)
}

func (p *exprParser) number() (complex128, error) {
	start := p.pos
	for p.pos < len(p.s) && (isDigit(p.s[p.pos]) || p.s[p.pos] == '.') {
		p.pos++
	}
	// Exponent, only when digits follow so "2e" is not swallowed.
	if p.pos < len(p.s) && p.s[p.pos] == 'e' {
		q := p.pos + 1
		if q < len(p.s) && (p.s[q] == '+' || p.s[q] == '-') {
			q++
		}
		if q < len(p.s) && isDigit(p.s[q]) {
			p.pos = q
			for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
				p.pos++
			}
		}
	}
	v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", p.s[start:p.pos])
	}
	return complex(v, 0), nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// formatComplex renders an amplitude for the stats panel.
func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	switch {
	case math.Abs(im) < 1e-12:
		return strconv.FormatFloat(re, 'f', 4, 64)
	case math.Abs(re) < 1e-12:
		return strconv.FormatFloat(im, 'f', 4, 64) + "i"
	case im < 0:
		return fmt.Sprintf("%.4f-%.4fi", re, -im)
	}
	return fmt.Sprintf("%.4f+%.4fi", re, im)
}
