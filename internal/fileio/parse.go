// Package fileio implements the file parsing and export collaborators
// around the cleaning engine. It is the only package that touches bytes;
// the engine itself never performs I/O.
package fileio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/GilTarablus/TidyImport/internal/engine"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format: expected .csv or .xlsx")

// ErrTooManyRows is returned when a file exceeds the configured row cap.
// Caps are enforced here, before the engine is invoked.
var ErrTooManyRows = errors.New("file exceeds the maximum row count")

// ErrNoHeader is returned for files without a header row.
var ErrNoHeader = errors.New("file has no header row")

// Table is the parsed-file representation handed to the engine: an ordered
// header list plus one Row per data line.
type Table struct {
	Headers []string
	Rows    []engine.Row
}

// Parse reads a CSV or XLSX stream into a Table, dispatching on the file
// extension. maxRows of zero means no cap.
func Parse(filename string, r io.Reader, maxRows int) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r, maxRows)
	case ".xlsx":
		return ParseXLSX(r, maxRows)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseCSV reads a CSV stream. The reader tolerates the usual spreadsheet
// artifacts: a UTF-8 BOM on the first header, lazy quoting, and rows with
// fewer fields than the header (padded with empty strings).
func ParseCSV(r io.Reader, maxRows int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	table := &Table{Headers: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, recordToRow(header, record))
		if maxRows > 0 && len(table.Rows) > maxRows {
			return nil, ErrTooManyRows
		}
	}
	return table, nil
}

// ParseXLSX reads the first sheet of an XLSX stream, first row as headers.
func ParseXLSX(r io.Reader, maxRows int) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := rows[0]
	table := &Table{Headers: header}
	for _, record := range rows[1:] {
		table.Rows = append(table.Rows, recordToRow(header, record))
		if maxRows > 0 && len(table.Rows) > maxRows {
			return nil, ErrTooManyRows
		}
	}
	return table, nil
}

// recordToRow zips a record onto the header list. Short records pad with
// empty strings; extra cells beyond the header are dropped.
func recordToRow(header, record []string) engine.Row {
	row := make(engine.Row, len(header))
	for i, h := range header {
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
