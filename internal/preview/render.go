package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"

	"stripedrc/internal/layout"
)

// RenderLayout draws recs black on white over a field of extentX×extentY
// nanometres, at nmPerPixel nanometres per pixel.
func RenderLayout(recs []layout.Record, extentX, extentY int64, nmPerPixel float64) (*image.RGBA, error) {
	if nmPerPixel <= 0 {
		return nil, fmt.Errorf("%v nm per pixel: %w", nmPerPixel, ErrEmptyLayout)
	}
	width := int(math.Ceil(float64(extentX) / nmPerPixel))
	height := int(math.Ceil(float64(extentY) / nmPerPixel))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layout %dx%d px: %w", width, height, ErrEmptyLayout)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	filler := rasterx.NewFiller(width, height, scanner)
	filler.SetColor(color.Black)
	for _, r := range recs {
		rasterx.AddRect(
			float64(r.XMin)/nmPerPixel, float64(r.YMin)/nmPerPixel,
			float64(r.XMax)/nmPerPixel, float64(r.YMax)/nmPerPixel,
			0, filler)
	}
	filler.Draw()
	filler.Clear()
	return img, nil
}
