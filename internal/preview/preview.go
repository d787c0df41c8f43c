// Package preview draws what the stripe scanner accepted, for people to look
// at. Nothing here feeds back into rectangle emission.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"stripedrc/internal/drc"
	"stripedrc/internal/raster"
)

// ErrEmptyLayout reports a render request with nothing to draw on.
var ErrEmptyLayout = errors.New("empty layout")

// Cleaned is the oversampled raster rebuilt from the scanner's rendered
// decisions, with every cell outside the rule band of its stripe cleared.
type Cleaned struct {
	cols, rows int
	sub        int
	cells      []bool // column-major
}

// Rasterize rebuilds a raster from per-stripe decisions. Within each
// stripe's subdivision block only the first rules.WidthCells() columns are
// kept; that band is what the emitted rectangles cover.
func Rasterize(decisions [][]bool, rules drc.Rules, subdivision int) *Cleaned {
	c := &Cleaned{sub: subdivision}
	if len(decisions) == 0 || subdivision <= 0 {
		return c
	}
	c.cols = len(decisions) * subdivision
	c.rows = len(decisions[0])
	c.cells = make([]bool, c.cols*c.rows)

	band := min(rules.WidthCells(), subdivision)
	for s, line := range decisions {
		for k := 0; k < band; k++ {
			col := s*subdivision + k
			copy(c.cells[col*c.rows:(col+1)*c.rows], line)
		}
	}
	return c
}

func (c *Cleaned) Width() int  { return c.cols }
func (c *Cleaned) Height() int { return c.rows }

// At reports whether (col, row) is foreground.
func (c *Cleaned) At(col, row int) bool {
	return c.cells[col*c.rows+row]
}

// Oversampled converts c back into a scanner input.
func (c *Cleaned) Oversampled() (*raster.Oversampled, error) {
	cols := make([][]bool, c.cols)
	for i := range cols {
		cols[i] = c.cells[i*c.rows : (i+1)*c.rows]
	}
	return raster.FromColumns(cols, c.sub)
}

// Image returns c as greyscale, foreground white, in source orientation.
func (c *Cleaned) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.cols, c.rows))
	for x := 0; x < c.cols; x++ {
		for y := 0; y < c.rows; y++ {
			if c.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// WritePNG encodes c as a PNG.
func WritePNG(w io.Writer, c *Cleaned) error {
	if c.cols == 0 || c.rows == 0 {
		return ErrEmptyLayout
	}
	return png.Encode(w, c.Image())
}
