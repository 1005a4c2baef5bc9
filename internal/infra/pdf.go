package infra

// pdf.go: report export using go-pdf/fpdf.
// Landscape A4 with:
//   - Title and generation timestamp
//   - Header row (bold, shaded)
//   - One row per record, wrapped to a new page when full
//
// Core fonts are cp1252; text goes through the UTF-8 translator so Spanish
// accents survive.

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
)

// WritePDF renders t as a paginated table.
func WritePDF(w io.Writer, t Tabla, generado time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin
	widths := columnWidths(t, contentW)

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range t.Encabezados {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.AddPage()

	// ── Title ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, tr(t.Titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Generado: "+generado.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Rows ─────────────────────────────────────────────────────────────────
	header()
	for _, fila := range t.Filas {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}
		for i := range t.Encabezados {
			val := ""
			if i < len(fila) {
				val = fila[i]
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(truncate(pdf, val, widths[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Filas) == 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, pdfRowHeight, "Sin registros", "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

func columnWidths(t Tabla, total float64) []float64 {
	n := len(t.Encabezados)
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}
	if len(t.Anchos) != n {
		for i := range widths {
			widths[i] = total / float64(n)
		}
		return widths
	}
	var sum float64
	for _, a := range t.Anchos {
		sum += a
	}
	for i, a := range t.Anchos {
		widths[i] = total * a / sum
	}
	return widths
}

// truncate shortens s until it fits in width, appending "..." when cut.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
