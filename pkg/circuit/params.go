package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Angle literals in QASM text are either plain floats, exponent form
// included ("1.2309594173407747", "-0.5", "1e-17", "2.5E+3"), or rational
// multiples of pi ("pi", "2*pi", "3pi/4", "-pi/2").
const (
	numberPattern = `\d*\.?\d+(?:[eE][+\-]?\d+)?`
	piPattern     = `\d*\.?\d*\*?pi(?:/\d+\.?\d*)?`
	paramPattern  = `-?(?:` + piPattern + `|` + numberPattern + `)`
)

// piExprRegex splits a pi literal into sign, coefficient and denominator.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// piRatio is the angle num*pi/den.
type piRatio struct {
	num, den int
}

// value evaluates the ratio with the same float64 operations, in the same
// order, that piValue applies to a parsed literal. A formatted ratio
// therefore parses back to the identical float.
func (r piRatio) value() float64 {
	return piValue(float64(r.num), float64(r.den))
}

func (r piRatio) String() string {
	s := "pi"
	if r.num != 1 {
		s = fmt.Sprintf("%d*pi", r.num)
	}
	if r.den != 1 {
		s += fmt.Sprintf("/%d", r.den)
	}
	return s
}

func piValue(coeff, den float64) float64 {
	v := coeff * math.Pi
	if den != 1 {
		v /= den
	}
	return v
}

// piRatios lists the reduced fractions of pi up to one full turn that
// FormatParam prints symbolically, smallest denominator first.
var piRatios = func() []piRatio {
	var out []piRatio
	for _, den := range []int{1, 2, 3, 4, 6, 8} {
		for num := 1; num <= 2*den; num++ {
			if gcd(num, den) == 1 {
				out = append(out, piRatio{num, den})
			}
		}
	}
	return out
}()

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseParamExpr parses one angle literal. It returns false for anything
// that is neither a float nor a pi literal, and for a zero denominator.
func ParseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	coeff, den := 1.0, 1.0
	var err error
	if m[2] != "" {
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, false
		}
	}
	if m[3] != "" {
		if den, err = strconv.ParseFloat(m[3], 64); err != nil || den == 0 {
			return 0, false
		}
	}

	v := piValue(coeff, den)
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// FormatParam prints an angle so that ParseParamExpr returns exactly val.
// Angles bit-identical to a listed pi ratio print symbolically ("3*pi/4");
// everything else uses the shortest float form, with an exponent when that
// is shorter ("1e-17").
func FormatParam(val float64) string {
	for _, r := range piRatios {
		switch v := r.value(); val {
		case v:
			return r.String()
		case -v:
			return "-" + r.String()
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}
