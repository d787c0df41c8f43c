package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stripedrc/internal/config"
	"stripedrc/internal/layout"
	"stripedrc/internal/logging"
	"stripedrc/internal/preview"
	"stripedrc/internal/raster"
)

func main() {
	cfg := config.Default()

	inputFile := flag.String("input", "", "Path to the input artwork (png, jpg, tif or svg)")
	outBase := flag.String("out", "", "Output path prefix (default: input path without extension)")
	format := flag.String("format", "json", "Rectangle output format: json or csv")
	widthUM := flag.Float64("width", float64(cfg.TargetWidthNM)/1000, "Target artwork width (µm)")
	layoutPNG := flag.Bool("layout-png", false, "Also render the rectangles to <out>_layout.png")
	layoutPDF := flag.Bool("pdf", false, "Also write a proof sheet to <out>_layout.pdf")
	nmPerPixel := flag.Float64("layout-res", 250, "Layout render resolution (nm per pixel)")
	verbose := flag.Bool("v", false, "Log pipeline progress to stderr")

	flag.IntVar(&cfg.MinWidth, "min-width", cfg.MinWidth, "Minimum feature width (rule units)")
	flag.IntVar(&cfg.MinGap, "min-gap", cfg.MinGap, "Minimum gap width (rule units)")
	flag.IntVar(&cfg.Bias, "bias", cfg.Bias, "Initial run counter at each stripe start (cells)")
	flag.Int64Var(&cfg.PitchNM, "pitch", cfg.PitchNM, "Stripe pitch (nm)")
	flag.Int64Var(&cfg.UnitNM, "unit", cfg.UnitNM, "Rule unit (nm)")
	flag.IntVar(&cfg.Subdivision, "subdivision", cfg.Subdivision, "Cells per stripe pitch")
	flag.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Luminance threshold (0-255); brighter is feature")
	flag.BoolVar(&cfg.Invert, "invert", cfg.Invert, "Treat dark pixels as feature")
	flag.IntVar(&cfg.Layer, "layer", cfg.Layer, "Layer number")
	flag.IntVar(&cfg.Datatype, "datatype", cfg.Datatype, "Datatype number")
	flag.BoolVar(&cfg.FlushOpen, "flush-open", cfg.FlushOpen, "Emit features still open at a stripe end")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Stripes scanned in parallel")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg.TargetWidthNM = int64(*widthUM * 1000)
	if *outBase == "" {
		*outBase = strings.TrimSuffix(*inputFile, filepath.Ext(*inputFile))
	}

	img, err := raster.Load(*inputFile)
	if err != nil {
		log.Fatalf("failed to load artwork: %v", err)
	}

	out, err := Convert(context.Background(), img, cfg)
	if err != nil {
		log.Fatalf("failed to convert artwork: %v", err)
	}

	fmt.Printf("Writing %d objects\n", len(out.Records))
	switch *format {
	case "json":
		err = writeFile(*outBase+"_rects.json", func(w io.Writer) error { return layout.WriteJSON(w, out.Records) })
	case "csv":
		err = writeFile(*outBase+"_rects.csv", func(w io.Writer) error { return layout.WriteCSV(w, out.Records) })
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("failed to write rectangles: %v", err)
	}

	if err = writeFile(*outBase+"_conv.png", func(w io.Writer) error { return preview.WritePNG(w, out.Preview) }); err != nil {
		log.Fatalf("failed to write preview: %v", err)
	}

	fieldX, fieldY := out.Field(cfg)
	if *layoutPNG {
		err = writeFile(*outBase+"_layout.png", func(w io.Writer) error {
			img, err := preview.RenderLayout(out.Records, fieldX, fieldY, *nmPerPixel)
			if err != nil {
				return err
			}
			return png.Encode(w, img)
		})
		if err != nil {
			log.Fatalf("failed to render layout: %v", err)
		}
	}
	if *layoutPDF {
		err = writeFile(*outBase+"_layout.pdf", func(w io.Writer) error {
			return preview.WritePDF(w, out.Records, fieldX, fieldY, preview.PDFOptions{Title: filepath.Base(*inputFile)})
		})
		if err != nil {
			log.Fatalf("failed to write proof sheet: %v", err)
		}
	}

	fmt.Printf("Done: output written with prefix %s\n", *outBase)
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
