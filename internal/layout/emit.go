// Package layout maps accepted stripe segments onto physical rectangles.
package layout

import (
	"errors"
	"fmt"
	"math"

	"stripedrc/internal/drc"
	"stripedrc/internal/logging"
)

var (
	// ErrUnitConversionOverflow reports a coordinate outside the int32
	// range used by layout formats.
	ErrUnitConversionOverflow = errors.New("unit conversion overflow")

	// ErrInvalidScale reports a non-positive pitch, unit, subdivision or width.
	ErrInvalidScale = errors.New("invalid scale")
)

// Tag is the layer/datatype pair attached to every record.
type Tag struct {
	Layer    int16 `json:"layer"`
	Datatype int16 `json:"datatype"`
}

// APTag is the aluminium artwork layer.
var APTag = Tag{Layer: 74, Datatype: 0}

// Record is a rectangle in nanometres. X runs along the stripe axis and Y
// along the scan axis.
type Record struct {
	XMin     int32 `json:"xmin"`
	XMax     int32 `json:"xmax"`
	YMin     int32 `json:"ymin"`
	YMax     int32 `json:"ymax"`
	Layer    int16 `json:"layer"`
	Datatype int16 `json:"datatype"`
}

// Emitter converts segments to records.
type Emitter struct {
	PitchNM     int64 // stripe pitch
	UnitNM      int64 // one rule unit
	Subdivision int   // cells per pitch along the scan axis
	MinWidth    int   // rule units; sets the stripe-axis extent of every record
	Tag         Tag
}

// DefaultEmitter returns the AP layer scale: 5 µm stripes, 1 µm rule unit,
// 3 unit wide rectangles.
func DefaultEmitter() Emitter {
	return Emitter{
		PitchNM:     5000,
		UnitNM:      1000,
		Subdivision: 10,
		MinWidth:    3,
		Tag:         APTag,
	}
}

func (e Emitter) validate() error {
	if e.PitchNM <= 0 || e.UnitNM <= 0 || e.Subdivision <= 0 || e.MinWidth <= 0 {
		return fmt.Errorf("pitch %d nm, unit %d nm, subdivision %d, width %d: %w",
			e.PitchNM, e.UnitNM, e.Subdivision, e.MinWidth, ErrInvalidScale)
	}
	return nil
}

// Emit maps one segment. The record is always MinWidth units wide along the
// stripe axis, whatever the pitch.
func (e Emitter) Emit(s drc.Segment) (Record, error) {
	if err := e.validate(); err != nil {
		return Record{}, err
	}

	overflow := func(what string) error {
		return fmt.Errorf("stripe %d scan [%d,%d): %s: %w", s.Stripe, s.Start, s.End, what, ErrUnitConversionOverflow)
	}

	xMin, ok := mul(int64(s.Stripe), e.PitchNM)
	if !ok {
		return Record{}, overflow("xmin")
	}
	width, ok := mul(int64(e.MinWidth), e.UnitNM)
	if !ok {
		return Record{}, overflow("width")
	}
	xMax := xMin + width
	yMin, ok := mul(int64(s.Start), e.PitchNM)
	if !ok {
		return Record{}, overflow("ymin")
	}
	yMax, ok := mul(int64(s.End), e.PitchNM)
	if !ok {
		return Record{}, overflow("ymax")
	}
	yMin /= int64(e.Subdivision)
	yMax /= int64(e.Subdivision)

	for _, c := range []struct {
		name string
		v    int64
	}{{"xmin", xMin}, {"xmax", xMax}, {"ymin", yMin}, {"ymax", yMax}} {
		if c.v < math.MinInt32 || c.v > math.MaxInt32 {
			return Record{}, overflow(fmt.Sprintf("%s = %d", c.name, c.v))
		}
	}

	return Record{
		XMin:     int32(xMin),
		XMax:     int32(xMax),
		YMin:     int32(yMin),
		YMax:     int32(yMax),
		Layer:    e.Tag.Layer,
		Datatype: e.Tag.Datatype,
	}, nil
}

// EmitAll maps segs in order. It fails on the first segment that cannot be
// represented and returns no records in that case.
func (e Emitter) EmitAll(segs []drc.Segment) ([]Record, error) {
	recs := make([]Record, 0, len(segs))
	for _, s := range segs {
		r, err := e.Emit(s)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	logging.Logger().Info("rectangles emitted", "count", len(recs), "layer", e.Tag.Layer, "datatype", e.Tag.Datatype)
	return recs, nil
}

// mul multiplies non-negative operands, reporting false on overflow.
func mul(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}
