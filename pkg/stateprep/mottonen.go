package stateprep

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"

	"qstateprep/pkg/circuit"
)

// Mottonen returns a gate sequence that prepares the normalized state
// amplitudes on wires, starting from |0...0>, up to a global phase.
//
// An RY cascade is recorded for every wire from the most to the least
// significant, followed by an RZ cascade pass that fixes the phases. The RZ
// pass is omitted when every amplitude is real; negative real amplitudes
// are then reached by signed angles on the least significant wire. Every
// cascade is recorded, zero angles included, so a real state always costs
// 2^n - 2 CNOTs. WithSkipZeroCascades drops cascades whose angles are all zero.
func Mottonen(amplitudes []complex128, wires []int, opts ...Option) (*circuit.Sequence, error) {
	cfg := newConfig(opts)
	if err := validateState(amplitudes, wires, cfg.normTolerance); err != nil {
		return nil, err
	}

	n := len(wires)
	realInput := isReal(amplitudes, cfg.angleTolerance)
	log := cfg.logger.With().
		Str("preparer", "mottonen").
		Ints("wires", wires).
		Bool("real", realInput).
		Logger()

	seq := circuit.NewSequence()
	for t := range n {
		var alpha []float64
		if realInput && t == n-1 {
			alpha = signedLeafAngles(amplitudes)
		} else {
			alpha = AlphaY(amplitudes, n, t)
		}
		if err := recordCascade(seq, cfg, log, alpha, AxisY, wires, t); err != nil {
			return nil, err
		}
	}

	if realInput {
		log.Debug().Msg("real amplitudes, RZ pass skipped")
		return seq, nil
	}

	for t := range n {
		alpha := AlphaZ(amplitudes, n, t)
		if err := recordCascade(seq, cfg, log, alpha, AxisZ, wires, t); err != nil {
			return nil, err
		}
	}

	log.Debug().Int("gates", seq.Len()).Int("cnots", seq.Count(circuit.TypeCX)).Msg("state prepared")
	return seq, nil
}

func recordCascade(seq *circuit.Sequence, cfg config, log zerolog.Logger, alpha []float64, axis Axis, wires []int, t int) error {
	if cfg.skipZeroCascades && floats.Norm(alpha, math.Inf(1)) <= cfg.angleTolerance {
		log.Debug().Stringer("axis", axis).Int("target", wires[t]).Msg("zero cascade skipped")
		return nil
	}
	controls := controlWires(wires, t)
	log.Debug().
		Stringer("axis", axis).
		Int("target", wires[t]).
		Int("controls", len(controls)).
		Msg("recording cascade")
	return MultiplexedRotation(seq, alpha, axis, wires[t], controls)
}

// validateState checks wires, the vector length and the norm, in that order.
func validateState(amplitudes []complex128, wires []int, normTol float64) error {
	if err := validateWires(wires); err != nil {
		return err
	}
	if want := 1 << len(wires); len(amplitudes) != want {
		return fmt.Errorf("%w: got %d amplitudes for %d wires, want %d", ErrStateShape, len(amplitudes), len(wires), want)
	}
	norm := cmplxs.Norm(amplitudes, 2)
	if math.IsNaN(norm) || math.Abs(norm*norm-1) > normTol {
		return fmt.Errorf("%w: squared norm is %g", ErrNotNormalized, norm*norm)
	}
	return nil
}
