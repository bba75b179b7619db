// Package export writes analysis views as CSV tables.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrEmptyHeader = errors.New("csv table has no header")

// Table is one exportable view: a header of display column names and one row
// per underlying record.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Append adds a row. Rows shorter than the header are padded with empty fields.
func (t *Table) Append(fields ...string) {
	row := make([]string, max(len(fields), len(t.Header)))
	copy(row, fields)
	t.Rows = append(t.Rows, row)
}

func (t Table) Len() int { return len(t.Rows) }

// FileName is the download name of a view.
func FileName(view string) string {
	return view + "_jii2025.csv"
}

// WriteCSV writes the header then every row, UTF-8, comma separated.
func WriteCSV(w io.Writer, t Table) error {
	if len(t.Header) == 0 {
		return ErrEmptyHeader
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyHeader
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

// Float formats a number the way exports print them.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

func Bool(v bool) string {
	return strconv.FormatBool(v)
}
