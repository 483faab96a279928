// Package tabular reads and writes the CSV files exchanged with spreadsheet
// tools. Files are written as UTF-8 with a byte order mark; a leading mark is
// accepted but not required on read.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// Table is a header plus rows. Rows may be shorter than the header; missing
// cells are absent values.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of name in the header, or -1. Header cells are
// compared after trimming.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Value returns row[col] and whether the cell is present.
func Value(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	return row[col], true
}

// Read decodes a CSV stream, stripping an optional UTF-8 BOM.
func Read(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &Table{Header: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// Write encodes header and rows as UTF-8 CSV preceded by a BOM.
func Write(w io.Writer, header []string, rows [][]string) error {
	encoded := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(encoded)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return encoded.Close()
}
