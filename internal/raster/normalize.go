package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"stripedrc/internal/logging"
)

// Options controls how source artwork is mapped onto stripes.
type Options struct {
	PitchNM       int64 // physical width of one stripe
	TargetWidthNM int64 // physical width the whole artwork is scaled to
	Threshold     uint8 // luminance cutoff; brighter pixels are foreground
	Invert        bool  // treat dark pixels as foreground instead
	Subdivision   int
}

// DefaultOptions returns the AP artwork settings: 5 µm stripes over a
// 425 µm wide field, cut at mid grey.
func DefaultOptions() Options {
	return Options{
		PitchNM:       5000,
		TargetWidthNM: 425000,
		Threshold:     128,
		Subdivision:   DefaultSubdivision,
	}
}

// Grid returns the stripe and scan counts (in pitch units) that src maps to
// under opts.
func (opts Options) Grid(src image.Rectangle) (stripes, scan int, err error) {
	if src.Dx() <= 0 || src.Dy() <= 0 {
		return 0, 0, fmt.Errorf("source %dx%d: %w", src.Dx(), src.Dy(), ErrInvalidDimensions)
	}
	if opts.PitchNM <= 0 {
		return 0, 0, fmt.Errorf("pitch %d nm: %w", opts.PitchNM, ErrInvalidDimensions)
	}
	if opts.Subdivision <= 0 {
		return 0, 0, fmt.Errorf("subdivision %d: %w", opts.Subdivision, ErrInvalidDimensions)
	}
	stripes = int(opts.TargetWidthNM / opts.PitchNM)
	scan = int(float64(src.Dy()) * float64(stripes) / float64(src.Dx()))
	if stripes <= 0 || scan <= 0 {
		return 0, 0, fmt.Errorf("target width %d nm at pitch %d nm gives %dx%d stripes: %w",
			opts.TargetWidthNM, opts.PitchNM, stripes, scan, ErrInvalidDimensions)
	}
	return stripes, scan, nil
}

// Normalize scales src so that one pixel along the stripe axis is one stripe
// and one pixel along the scan axis is one subdivision cell, thresholds it,
// then replicates each stripe across its subdivision block. Scaling is
// nearest-neighbour only; the scanner depends on crisp runs.
func Normalize(src image.Image, opts Options) (*Oversampled, error) {
	b := src.Bounds()
	stripes, scan, err := opts.Grid(b)
	if err != nil {
		return nil, err
	}
	sub := opts.Subdivision
	rows := scan * sub

	// Transparent areas read as white, as in the loaders.
	scaled := image.NewRGBA(image.Rect(0, 0, stripes, rows))
	draw.Draw(scaled, scaled.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, b, draw.Over, nil)

	r, err := New(stripes*sub, rows, sub)
	if err != nil {
		return nil, err
	}
	for s := 0; s < stripes; s++ {
		for j := 0; j < rows; j++ {
			fg := luminance(scaled.RGBAAt(s, j)) > opts.Threshold
			if opts.Invert {
				fg = !fg
			}
			if !fg {
				continue
			}
			for k := 0; k < sub; k++ {
				r.set(s*sub+k, j, true)
			}
		}
	}

	logging.Logger().Info("normalized artwork",
		"source", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"stripes", stripes,
		"scanCells", rows,
		"foreground", r.Count())
	return r, nil
}

func luminance(c color.RGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}
