// Package drc enforces minimum feature width and minimum gap width along
// each scan stripe of an oversampled raster.
//
// Each stripe is walked once, left to right, by a two-state automaton.
// Features that would close too early are healed (extended forward) and
// features that would open too soon after the previous one are suppressed,
// so every run the automaton accepts is legal without backtracking.
package drc

import (
	"errors"
	"fmt"
)

// DefaultBias seeds the run counter at the start of every stripe so that the
// first cell cannot immediately trip a width or gap check. It is not derived
// from either rule.
const DefaultBias = 4

// ErrInvalidRules reports a rule set the scanner cannot apply.
var ErrInvalidRules = errors.New("invalid design rules")

// Rules holds the two minimum-feature rules in physical rule units. Along
// the scan axis one rule unit is two cells.
type Rules struct {
	MinWidth int
	MinGap   int
	Bias     int
}

// DefaultRules returns the AP layer rules: 3 unit features, 2 unit gaps.
func DefaultRules() Rules {
	return Rules{MinWidth: 3, MinGap: 2, Bias: DefaultBias}
}

// WidthCells is the minimum feature run in half-unit cells.
func (r Rules) WidthCells() int { return r.MinWidth * 2 }

// GapCells is the minimum gap run in half-unit cells.
func (r Rules) GapCells() int { return r.MinGap * 2 }

// Validate checks r against the raster subdivision. The rule band
// (WidthCells) has to fit inside one stripe's subdivision block.
func (r Rules) Validate(subdivision int) error {
	switch {
	case r.MinWidth <= 0:
		return fmt.Errorf("min width %d: %w", r.MinWidth, ErrInvalidRules)
	case r.MinGap <= 0:
		return fmt.Errorf("min gap %d: %w", r.MinGap, ErrInvalidRules)
	case r.Bias < 0:
		return fmt.Errorf("bias %d: %w", r.Bias, ErrInvalidRules)
	case r.WidthCells() > subdivision:
		return fmt.Errorf("width band of %d cells exceeds subdivision %d: %w", r.WidthCells(), subdivision, ErrInvalidRules)
	}
	return nil
}
