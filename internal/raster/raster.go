// Package raster turns source artwork into the boolean, oversampled grid that
// the stripe scanner walks.
//
// Axis roles are fixed: the column index runs along the stripe axis (image
// x) and the row index runs along the scan axis (image y). Every physical
// stripe owns Subdivision consecutive columns.
package raster

import (
	"errors"
	"fmt"
)

// DefaultSubdivision is the number of oversampled cells per stripe pitch
// along each axis.
const DefaultSubdivision = 10

// ErrInvalidDimensions reports an empty or malformed raster, or a
// non-positive pitch or subdivision.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Oversampled is a W×H grid of booleans, true meaning foreground. W and H
// are both multiples of the subdivision factor.
type Oversampled struct {
	cols, rows int
	sub        int
	cells      []bool // column-major
}

// New returns an all-background raster of cols×rows cells.
func New(cols, rows, sub int) (*Oversampled, error) {
	if sub <= 0 {
		return nil, fmt.Errorf("subdivision %d: %w", sub, ErrInvalidDimensions)
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("raster %dx%d: %w", cols, rows, ErrInvalidDimensions)
	}
	if cols%sub != 0 || rows%sub != 0 {
		return nil, fmt.Errorf("raster %dx%d is not a multiple of subdivision %d: %w", cols, rows, sub, ErrInvalidDimensions)
	}
	return &Oversampled{
		cols:  cols,
		rows:  rows,
		sub:   sub,
		cells: make([]bool, cols*rows),
	}, nil
}

// FromColumns copies cols into a new raster. All columns must have the same
// length.
func FromColumns(cols [][]bool, sub int) (*Oversampled, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns: %w", ErrInvalidDimensions)
	}
	rows := len(cols[0])
	r, err := New(len(cols), rows, sub)
	if err != nil {
		return nil, err
	}
	for i, c := range cols {
		if len(c) != rows {
			return nil, fmt.Errorf("column %d has %d rows, want %d: %w", i, len(c), rows, ErrInvalidDimensions)
		}
		copy(r.cells[i*rows:(i+1)*rows], c)
	}
	return r, nil
}

// Width is the number of columns (stripe axis).
func (r *Oversampled) Width() int { return r.cols }

// Height is the number of rows (scan axis).
func (r *Oversampled) Height() int { return r.rows }

func (r *Oversampled) Subdivision() int { return r.sub }

// Stripes returns the number of physical stripes.
func (r *Oversampled) Stripes() int { return r.cols / r.sub }

// ScanLen returns the number of cells along each stripe's scan axis.
func (r *Oversampled) ScanLen() int { return r.rows }

// At reports whether the cell at (col, row) is foreground.
func (r *Oversampled) At(col, row int) bool {
	return r.cells[col*r.rows+row]
}

func (r *Oversampled) set(col, row int, v bool) {
	r.cells[col*r.rows+row] = v
}

// Scanline returns a copy of the column that seeds the evaluation of the
// given stripe, which is the first column of its subdivision block.
func (r *Oversampled) Scanline(stripe int) []bool {
	col := stripe * r.sub
	line := make([]bool, r.rows)
	copy(line, r.cells[col*r.rows:(col+1)*r.rows])
	return line
}

// Count returns the number of foreground cells.
func (r *Oversampled) Count() int {
	n := 0
	for _, v := range r.cells {
		if v {
			n++
		}
	}
	return n
}
