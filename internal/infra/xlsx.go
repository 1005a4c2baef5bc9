package infra

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes t as a single-sheet workbook: header row first, one row
// per record after it.
func WriteXLSX(w io.Writer, t Tabla) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if t.Titulo != "" {
		if err := f.SetSheetName(sheet, sheetName(t.Titulo)); err != nil {
			return fmt.Errorf("xlsx: rename sheet: %w", err)
		}
		sheet = sheetName(t.Titulo)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}

	for i, h := range t.Encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return fmt.Errorf("xlsx: header style: %w", err)
		}
	}

	for r, fila := range t.Filas {
		for c, val := range fila {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("xlsx: set cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// sheetName trims a title to Excel's 31-character sheet name limit.
func sheetName(titulo string) string {
	r := []rune(titulo)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
