package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG draws the icon in data onto a white canvas the size of its
// view box.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w := float64(icon.ViewBox.W)
	h := float64(icon.ViewBox.H)
	width, height := int(w), int(h)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg view box %vx%v: %w", w, h, ErrInvalidDimensions)
	}
	icon.SetTarget(0, 0, w, h)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}
