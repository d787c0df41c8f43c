package raster

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// Load reads artwork from filePath. PNG, JPEG, TIFF and SVG are supported;
// SVG is rasterised at its view box size.
func Load(filePath string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	switch ext {
	case ".svg":
		return rasterizeSVG(data)
	case ".png":
		return png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case ".tif", ".tiff":
		return tiff.Decode(bytes.NewReader(data))
	default:
		return nil, errors.New("unsupported image format: " + ext)
	}
}
