package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin      = 20.0
	pdfCaptionSize = 8.0
)

// writePDF lays the rendered cards out four per A4 page in a 2x2 grid,
// with an index caption under each card.
func writePDF(path string, cards []*image.NRGBA) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", pdfCaptionSize)

	pageW, pageH := pdf.GetPageSize()
	cellW := (pageW - 3*pdfMargin) / 2
	cellH := (pageH - 3*pdfMargin) / 2
	// Cards are square; fit them into the cell and center horizontally.
	side := cellW
	if cellH < side {
		side = cellH
	}

	cells := [4][2]float64{
		{pdfMargin, pdfMargin},
		{2*pdfMargin + cellW, pdfMargin},
		{pdfMargin, 2*pdfMargin + cellH},
		{2*pdfMargin + cellW, 2*pdfMargin + cellH},
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, card := range cards {
		if i%4 == 0 {
			pdf.AddPage()
		}
		cell := cells[i%4]
		x := cell[0] + (cellW-side)/2
		y := cell[1]

		var buf bytes.Buffer
		if err := png.Encode(&buf, card); err != nil {
			return fmt.Errorf("encode card %d: %w", i, err)
		}
		name := fmt.Sprintf("card_%d", i)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, x, y, side, side, false, opts, 0, "")
		pdf.Text(x+4, y+side+pdfCaptionSize+2, fmt.Sprintf("Card #%d", i+1))
	}

	if pdf.Err() {
		return fmt.Errorf("build pdf: %w", pdf.Error())
	}
	return pdf.OutputFileAndClose(path)
}
