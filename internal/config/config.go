// Package config gathers every tunable of a conversion run and hands each
// stage its own view of them.
package config

import (
	"fmt"
	"math"

	"stripedrc/internal/drc"
	"stripedrc/internal/layout"
	"stripedrc/internal/raster"
)

// Config describes one conversion run. Lengths are in nanometres unless the
// field name says otherwise.
type Config struct {
	MinWidth int // rule units
	MinGap   int // rule units
	Bias     int // initial run counter, in cells

	PitchNM       int64
	UnitNM        int64
	Subdivision   int
	TargetWidthNM int64

	Threshold int // 0-255
	Invert    bool

	Layer    int
	Datatype int

	FlushOpen bool
	Workers   int
}

// Default returns the AP artwork settings.
func Default() Config {
	return Config{
		MinWidth:      3,
		MinGap:        2,
		Bias:          drc.DefaultBias,
		PitchNM:       5000,
		UnitNM:        1000,
		Subdivision:   raster.DefaultSubdivision,
		TargetWidthNM: 425000,
		Threshold:     128,
		Layer:         int(layout.APTag.Layer),
		Datatype:      int(layout.APTag.Datatype),
		Workers:       1,
	}
}

// Validate checks the values no stage can recover from.
func (c Config) Validate() error {
	if c.PitchNM <= 0 || c.UnitNM <= 0 || c.Subdivision <= 0 {
		return fmt.Errorf("pitch %d nm, unit %d nm, subdivision %d: %w", c.PitchNM, c.UnitNM, c.Subdivision, raster.ErrInvalidDimensions)
	}
	if c.TargetWidthNM < c.PitchNM {
		return fmt.Errorf("target width %d nm is narrower than one stripe: %w", c.TargetWidthNM, raster.ErrInvalidDimensions)
	}
	if err := c.Rules().Validate(c.Subdivision); err != nil {
		return err
	}
	if int64(c.MinWidth)*c.UnitNM > c.PitchNM {
		return fmt.Errorf("%d unit wide rectangles overlap %d nm stripes: %w", c.MinWidth, c.PitchNM, drc.ErrInvalidRules)
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold %d outside 0-255", c.Threshold)
	}
	if c.Layer < 0 || c.Layer > math.MaxInt16 || c.Datatype < 0 || c.Datatype > math.MaxInt16 {
		return fmt.Errorf("layer %d/%d outside 0-%d", c.Layer, c.Datatype, math.MaxInt16)
	}
	return nil
}

func (c Config) Rules() drc.Rules {
	return drc.Rules{MinWidth: c.MinWidth, MinGap: c.MinGap, Bias: c.Bias}
}

func (c Config) RasterOptions() raster.Options {
	return raster.Options{
		PitchNM:       c.PitchNM,
		TargetWidthNM: c.TargetWidthNM,
		Threshold:     uint8(c.Threshold),
		Invert:        c.Invert,
		Subdivision:   c.Subdivision,
	}
}

func (c Config) ScanOptions() drc.Options {
	return drc.Options{Workers: c.Workers, FlushOpen: c.FlushOpen}
}

func (c Config) Emitter() layout.Emitter {
	return layout.Emitter{
		PitchNM:     c.PitchNM,
		UnitNM:      c.UnitNM,
		Subdivision: c.Subdivision,
		MinWidth:    c.MinWidth,
		Tag:         layout.Tag{Layer: int16(c.Layer), Datatype: int16(c.Datatype)},
	}
}
