package stateprep

import "fmt"

// validateWires checks that wires is a non-empty list of distinct,
// non-negative labels.
func validateWires(wires []int) error {
	if len(wires) == 0 {
		return ErrNoWires
	}
	if len(wires) > MaxWires {
		return fmt.Errorf("%w: %d wires, at most %d", ErrTooManyWires, len(wires), MaxWires)
	}
	seen := make(map[int]struct{}, len(wires))
	for _, w := range wires {
		if w < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidWire, w)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %d appears twice", ErrDuplicateWire, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// controlWires returns the wires that control the rotation on wires[target]:
// every more significant wire, nearest first. controls[i] selects bit i of
// the control pattern.
func controlWires(wires []int, target int) []int {
	controls := make([]int, target)
	for i := range target {
		controls[i] = wires[target-1-i]
	}
	return controls
}
