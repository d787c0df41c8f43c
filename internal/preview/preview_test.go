package preview

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"reflect"
	"testing"

	"stripedrc/internal/drc"
	"stripedrc/internal/layout"
	"stripedrc/internal/raster"
)

func TestRasterize(t *testing.T) {
	rules := drc.DefaultRules()
	decisions := [][]bool{
		{true, true, false, false},
		{false, true, true, false},
	}

	c := Rasterize(decisions, rules, 10)
	if c.Width() != 20 || c.Height() != 4 {
		t.Fatalf("size = %dx%d, want 20x4", c.Width(), c.Height())
	}
	for col := 0; col < c.Width(); col++ {
		for row := 0; row < c.Height(); row++ {
			want := col%10 < 6 && decisions[col/10][row]
			if c.At(col, row) != want {
				t.Errorf("At(%d, %d) = %v, want %v", col, row, !want, want)
			}
		}
	}
	if !decisions[0][0] || decisions[0][2] {
		t.Error("Rasterize modified its input")
	}

	if c := Rasterize(nil, rules, 10); c.Width() != 0 {
		t.Errorf("empty decisions gave width %d", c.Width())
	}
}

func TestRasterize_Idempotent(t *testing.T) {
	// Two stripes: a healed spike and a pair of features with a short gap.
	lines := [][]bool{
		append(append(make([]bool, 10), true, true), make([]bool, 28)...),
		make([]bool, 40),
	}
	for j := 5; j < 15; j++ {
		lines[1][j] = true
	}
	for j := 17; j < 25; j++ {
		lines[1][j] = true
	}
	cols := make([][]bool, 20)
	for i := range cols {
		cols[i] = lines[i/10]
	}
	r, err := raster.FromColumns(cols, 10)
	if err != nil {
		t.Fatal(err)
	}

	rules := drc.DefaultRules()
	first, err := drc.Scan(context.Background(), r, rules, drc.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cleaned, err := Rasterize(first.Decisions, rules, 10).Oversampled()
	if err != nil {
		t.Fatal(err)
	}
	second, err := drc.Scan(context.Background(), cleaned, rules, drc.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Segments, second.Segments) {
		t.Errorf("rescan of cleaned raster gave %v, want %v", second.Segments, first.Segments)
	}
	if second.Stats.Heals != 0 || second.Stats.Suppressions != 0 {
		t.Errorf("rescan healed %d and suppressed %d cells, want none", second.Stats.Heals, second.Stats.Suppressions)
	}
}

func TestWritePNG(t *testing.T) {
	c := Rasterize([][]bool{{true, false}}, drc.DefaultRules(), 10)
	var buf bytes.Buffer
	if err := WritePNG(&buf, c); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 10x2", b)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("foreground pixel red = %#x, want white", r)
	}
	if r, _, _, _ := img.At(8, 0).RGBA(); r != 0 {
		t.Errorf("pixel outside band red = %#x, want black", r)
	}

	if err := WritePNG(&buf, Rasterize(nil, drc.DefaultRules(), 10)); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("empty raster error = %v, want ErrEmptyLayout", err)
	}
}

func TestRenderLayout(t *testing.T) {
	recs := []layout.Record{
		{XMin: 0, XMax: 3000, YMin: 0, YMax: 4000, Layer: 74},
		{XMin: 5000, XMax: 8000, YMin: 5000, YMax: 9000, Layer: 74},
	}
	img, err := RenderLayout(recs, 10000, 10000, 100)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v, want 100x100", b)
	}
	for _, p := range []struct {
		x, y int
		dark bool
	}{
		{15, 20, true},
		{65, 70, true},
		{40, 20, false},
		{15, 60, false},
	} {
		c := img.RGBAAt(p.x, p.y)
		if dark := c.R < 0x20; dark != p.dark {
			t.Errorf("pixel (%d, %d) = %v, want dark=%v", p.x, p.y, c, p.dark)
		}
	}

	if _, err := RenderLayout(recs, 0, 10000, 100); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("zero extent error = %v, want ErrEmptyLayout", err)
	}
	if _, err := RenderLayout(recs, 10000, 10000, 0); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("zero scale error = %v, want ErrEmptyLayout", err)
	}
}

func TestWritePDF(t *testing.T) {
	recs := []layout.Record{{XMin: 0, XMax: 3000, YMin: 0, YMax: 4000, Layer: 74}}
	var buf bytes.Buffer
	if err := WritePDF(&buf, recs, 10000, 10000, PDFOptions{Title: "art"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
	}

	if err := WritePDF(&buf, recs, 0, 0, PDFOptions{}); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("empty field error = %v, want ErrEmptyLayout", err)
	}
}
