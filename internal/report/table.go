// Package report turns ledger rows and per-run records into workbook tables.
package report

import (
	"fmt"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

// LedgerSheet is the sheet name of the rebuilt ledger workbook.
const LedgerSheet = "All_Exports"

// Highlight colours cells of Column equal to Good or Bad. Other values
// are left alone.
type Highlight struct {
	Column string
	Good   string
	Bad    string
}

// SuccessHighlight is the rule every report applies to its Success column.
var SuccessHighlight = Highlight{Column: "Success", Good: "True", Bad: "False"}

// Table is one sheet: a header row followed by data rows.
type Table struct {
	Sheet     string
	Headers   []string
	Rows      [][]string
	Highlight *Highlight
}

// HighlightIndex returns the column position of the highlight rule, or -1.
func (t Table) HighlightIndex() int {
	if t.Highlight == nil {
		return -1
	}
	for i, h := range t.Headers {
		if h == t.Highlight.Column {
			return i
		}
	}
	return -1
}

// Writer renders tables into a file at path, replacing any previous file.
type Writer interface {
	Write(path string, tables []Table) error
}

// RowSource is the read side of a ledger.
type RowSource interface {
	Rows() (header []string, rows [][]string, err error)
}

// FromLedger reads every ledger row into a table. Rows are padded or cut to
// the header width. An absent ledger gives an empty table with the default
// columns.
func FromLedger(src RowSource) (Table, error) {
	header, rows, err := src.Rows()
	if err != nil {
		return Table{}, fmt.Errorf("read ledger: %w", err)
	}
	if len(header) == 0 {
		header = record.Columns
	}

	t := Table{
		Sheet:     LedgerSheet,
		Headers:   append([]string(nil), header...),
		Rows:      make([][]string, 0, len(rows)),
		Highlight: &SuccessHighlight,
	}
	for _, r := range rows {
		cells := make([]string, len(header))
		copy(cells, r)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// Rebuild regenerates the workbook at path from the full ledger.
func Rebuild(src RowSource, path string, w Writer) (Table, error) {
	t, err := FromLedger(src)
	if err != nil {
		return Table{}, err
	}
	if err := w.Write(path, []Table{t}); err != nil {
		return t, fmt.Errorf("write %s: %w", path, err)
	}
	return t, nil
}
