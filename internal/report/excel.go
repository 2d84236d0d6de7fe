package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// fill colours for the highlight rule
const (
	goodFill = "C6EFCE"
	badFill  = "FFC7CE"
)

// ExcelWriter writes tables as .xlsx workbooks, one sheet per table, with a
// frozen header, a styled table range, fitted column widths and conditional
// fills on the highlight column.
type ExcelWriter struct {
	TableStyle string
}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{TableStyle: "TableStyleMedium2"}
}

func (w *ExcelWriter) Write(path string, tables []Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Sheet); err != nil {
				return fmt.Errorf("name sheet %s: %w", t.Sheet, err)
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", t.Sheet, err)
		}
		if err := w.writeSheet(f, i, t); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return f.SaveAs(path)
}

func (w *ExcelWriter) writeSheet(f *excelize.File, n int, t Table) error {
	sheet := t.Sheet
	if err := f.SetSheetRow(sheet, "A1", &t.Headers); err != nil {
		return err
	}
	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &t.Rows[i]); err != nil {
			return err
		}
	}
	if len(t.Headers) == 0 {
		return nil
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for col, width := range columnWidths(t) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	if len(t.Rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(t.Headers), len(t.Rows)+1)
	if err != nil {
		return err
	}
	if uniqueHeaders(t.Headers) {
		if err := f.AddTable(sheet, &excelize.Table{
			Range:     "A1:" + last,
			Name:      fmt.Sprintf("Table%d", n+1),
			StyleName: w.TableStyle,
		}); err != nil {
			return err
		}
	}
	return addHighlight(f, t)
}

func addHighlight(f *excelize.File, t Table) error {
	col := t.HighlightIndex()
	if col < 0 {
		return nil
	}
	top, err := excelize.CoordinatesToCellName(col+1, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col+1, len(t.Rows)+1)
	if err != nil {
		return err
	}

	good, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{goodFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	bad, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{badFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	return f.SetConditionalFormat(t.Sheet, top+":"+bottom, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "==", Format: good, Value: quote(t.Highlight.Good)},
		{Type: "cell", Criteria: "==", Format: bad, Value: quote(t.Highlight.Bad)},
	})
}

// columnWidths sizes each column to its widest cell in display cells.
func columnWidths(t Table) []float64 {
	widths := make([]float64, len(t.Headers))
	for i := range t.Headers {
		w := runewidth.StringWidth(t.Headers[i])
		for _, r := range t.Rows {
			if i < len(r) {
				if cw := runewidth.StringWidth(r[i]); cw > w {
					w = cw
				}
			}
		}
		widths[i] = clampWidth(float64(w + 2))
	}
	return widths
}

func clampWidth(w float64) float64 {
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}

func uniqueHeaders(headers []string) bool {
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if h == "" {
			return false
		}
		if _, ok := seen[h]; ok {
			return false
		}
		seen[h] = struct{}{}
	}
	return true
}

// quote renders s as an Excel string literal for a cell rule.
func quote(s string) string {
	return `"` + s + `"`
}
