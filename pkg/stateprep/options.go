package stateprep

import (
	"math"

	"github.com/rs/zerolog"
)

const (
	// DefaultNormTolerance bounds |sum |a|^2 - 1| for accepted state vectors.
	DefaultNormTolerance = 1e-6

	// DefaultAngleTolerance is the magnitude below which an angle or an
	// imaginary part counts as zero.
	DefaultAngleTolerance = 1e-12

	// MaxWires caps the register size of a dense amplitude vector.
	MaxWires = 30
)

// Option customizes a preparer call.
type Option func(*config)

type config struct {
	logger           zerolog.Logger
	normTolerance    float64
	angleTolerance   float64
	skipZeroCascades bool
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:         zerolog.Nop(),
		normTolerance:  DefaultNormTolerance,
		angleTolerance: DefaultAngleTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger that receives per-cascade debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithNormTolerance sets the accepted deviation of the squared norm from 1.
// Panics on negative or NaN values.
func WithNormTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("stateprep: WithNormTolerance requires tol >= 0")
	}
	return func(c *config) {
		c.normTolerance = tol
	}
}

// WithAngleTolerance sets the threshold below which angles and imaginary
// parts are treated as zero. Panics on negative or NaN values.
func WithAngleTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("stateprep: WithAngleTolerance requires tol >= 0")
	}
	return func(c *config) {
		c.angleTolerance = tol
	}
}

// WithSkipZeroCascades makes Mottonen drop any cascade whose angles are all
// within the angle tolerance of zero, together with its CNOTs. Sparse states
// such as basis states then need fewer gates than the fixed 2^n - 2 CNOTs.
func WithSkipZeroCascades() Option {
	return func(c *config) {
		c.skipZeroCascades = true
	}
}
