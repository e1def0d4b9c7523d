package fileio

// export.go serializes the cleaned working set. Every cell passes the
// engine's injection sanitizer; Phone cells get the grouped display format
// at write time only, never persisted back into the row model.

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/GilTarablus/TidyImport/internal/engine"
)

// exportCell prepares one cell for serialization.
func exportCell(header, value string) string {
	if header == engine.FieldPhone.Header() {
		value = engine.FormatPhoneNumber(value)
	}
	return engine.SanitizeForExport(value)
}

// WriteCSV writes the working set as CSV: one header row, then sanitized
// cells in header order.
func WriteCSV(w io.Writer, headers []string, rows []engine.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(headers))
	for i, row := range rows {
		for j, h := range headers {
			record[j] = exportCell(h, row[h])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the working set as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, headers []string, rows []engine.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		return err
	}

	for i, row := range rows {
		for j, h := range headers {
			cells[j] = exportCell(h, row[h])
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// setRow writes one sheet row starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
