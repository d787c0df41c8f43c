package main

import (
	"context"
	"image"

	"stripedrc/internal/config"
	"stripedrc/internal/drc"
	"stripedrc/internal/layout"
	"stripedrc/internal/preview"
	"stripedrc/internal/raster"
)

// Output is everything one conversion produces.
type Output struct {
	Raster  *raster.Oversampled
	Scan    *drc.Result
	Records []layout.Record
	Preview *preview.Cleaned
}

// Field returns the physical size of the converted area in nanometres.
func (o *Output) Field(cfg config.Config) (x, y int64) {
	x = int64(o.Raster.Stripes()) * cfg.PitchNM
	y = int64(o.Raster.ScanLen()) * cfg.PitchNM / int64(cfg.Subdivision)
	return x, y
}

// Convert runs artwork through normalisation, the stripe scanner, rectangle
// emission and preview rasterisation. It either returns a complete result
// or an error; no partial rectangle list is ever returned.
func Convert(ctx context.Context, img image.Image, cfg config.Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r, err := raster.Normalize(img, cfg.RasterOptions())
	if err != nil {
		return nil, err
	}

	rules := cfg.Rules()
	res, err := drc.Scan(ctx, r, rules, cfg.ScanOptions())
	if err != nil {
		return nil, err
	}

	recs, err := cfg.Emitter().EmitAll(res.Segments)
	if err != nil {
		return nil, err
	}

	return &Output{
		Raster:  r,
		Scan:    res,
		Records: recs,
		Preview: preview.Rasterize(res.Decisions, rules, cfg.Subdivision),
	}, nil
}
