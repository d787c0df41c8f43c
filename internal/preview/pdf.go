package preview

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"stripedrc/internal/layout"
)

// PDFOptions controls the proof sheet.
type PDFOptions struct {
	// Magnification scales physical size onto the page; 200 puts a
	// 425 µm field on 85 mm.
	Magnification float64
	Title         string
}

const pdfMargin = 10 // mm

// WritePDF draws recs as a single-page proof at Magnification× physical
// size, with the field outlined and a caption above it.
func WritePDF(w io.Writer, recs []layout.Record, extentX, extentY int64, opts PDFOptions) error {
	if opts.Magnification <= 0 {
		opts.Magnification = 200
	}
	if extentX <= 0 || extentY <= 0 {
		return fmt.Errorf("field %dx%d nm: %w", extentX, extentY, ErrEmptyLayout)
	}
	mm := func(nm int64) float64 {
		return float64(nm) / 1e6 * opts.Magnification
	}
	fieldW, fieldH := mm(extentX), mm(extentY)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: fieldW + 2*pdfMargin, Ht: fieldH + 2*pdfMargin},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	caption := fmt.Sprintf("%d rectangles, %.0fx", len(recs), opts.Magnification)
	if opts.Title != "" {
		caption = opts.Title + ": " + caption
	}
	pdf.Text(pdfMargin, pdfMargin-3, caption)

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.1)
	pdf.Rect(pdfMargin, pdfMargin, fieldW, fieldH, "D")

	pdf.SetFillColor(0, 0, 0)
	for _, r := range recs {
		pdf.Rect(pdfMargin+mm(int64(r.XMin)), pdfMargin+mm(int64(r.YMin)),
			mm(int64(r.XMax-r.XMin)), mm(int64(r.YMax-r.YMin)), "F")
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
