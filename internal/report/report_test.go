package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Zuo-Peng/meshlog/internal/ledger"
	"github.com/Zuo-Peng/meshlog/internal/parse"
	"github.com/Zuo-Peng/meshlog/internal/record"
)

type staticSource struct {
	header []string
	rows   [][]string
	err    error
}

func (s staticSource) Rows() ([]string, [][]string, error) { return s.header, s.rows, s.err }

type captureWriter struct {
	path   string
	tables []Table
	err    error
}

func (w *captureWriter) Write(path string, tables []Table) error {
	w.path, w.tables = path, tables
	return w.err
}

func TestFromLedgerAbsent(t *testing.T) {
	tbl, err := FromLedger(staticSource{})
	require.NoError(t, err)
	assert.Equal(t, LedgerSheet, tbl.Sheet)
	assert.Equal(t, record.Columns, tbl.Headers)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, SuccessHighlight, *tbl.Highlight)
}

func TestFromLedgerShapesRows(t *testing.T) {
	src := staticSource{
		header: []string{"ProjectName", "Success", "LogPath"},
		rows: [][]string{
			{"A", "True", "/a.log"},
			{"B"},
			{"C", "False", "/c.log", "extra", "cells"},
		},
	}

	tbl, err := FromLedger(src)
	require.NoError(t, err)
	assert.Equal(t, src.header, tbl.Headers)
	assert.Equal(t, [][]string{
		{"A", "True", "/a.log"},
		{"B", "", ""},
		{"C", "False", "/c.log"},
	}, tbl.Rows)
	assert.Equal(t, 1, tbl.HighlightIndex())
}

func TestFromLedgerError(t *testing.T) {
	_, err := FromLedger(staticSource{err: errors.New("disk gone")})
	assert.ErrorContains(t, err, "disk gone")
}

func TestHighlightIndex(t *testing.T) {
	assert.Equal(t, -1, Table{Headers: []string{"Success"}}.HighlightIndex())
	assert.Equal(t, -1, Table{Headers: []string{"A"}, Highlight: &SuccessHighlight}.HighlightIndex())
}

func TestRebuildDeterministic(t *testing.T) {
	dir := t.TempDir()
	store, err := ledger.Open(ledger.BackendTSV, dir)
	require.NoError(t, err)

	_, err = ledger.Merge(store, []record.Unified{
		{ProjectName: "A", Tool: "PhotoMesh", Success: "True", LogPath: "/a.log", IngestedAt: "2024-06-01 10:00:00"},
		{ProjectName: "B", Tool: "RealityMesh", Success: "False", Errors: "x;y", LogPath: "/b.log", IngestedAt: "2024-06-01 10:00:00"},
	})
	require.NoError(t, err)

	w1, w2 := &captureWriter{}, &captureWriter{}
	first, err := Rebuild(store, "out.xlsx", w1)
	require.NoError(t, err)
	second, err := Rebuild(store, "out.xlsx", w2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, w1.tables, w2.tables)
	require.Len(t, w1.tables, 1)
	assert.Len(t, w1.tables[0].Rows, 2)
	assert.Equal(t, "out.xlsx", w1.path)
}

func TestRebuildWriteFailure(t *testing.T) {
	w := &captureWriter{err: errors.New("permission denied")}
	_, err := Rebuild(staticSource{}, "/ro/out.xlsx", w)
	require.Error(t, err)
	assert.ErrorContains(t, err, "permission denied")
}

func TestExcelWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "All_Exports.xlsx")
	tbl := Table{
		Sheet:     LedgerSheet,
		Headers:   []string{"ProjectName", "Success", "LogPath"},
		Rows:      [][]string{{"Alpha", "True", "/a.log"}, {"Beta", "False", "/b.log"}, {"Gamma", "", "/c.log"}},
		Highlight: &SuccessHighlight,
	}

	require.NoError(t, NewExcelWriter().Write(path, []Table{tbl}))
	// writing again replaces the file
	require.NoError(t, NewExcelWriter().Write(path, []Table{tbl}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{LedgerSheet}, f.GetSheetList())

	rows, err := f.GetRows(LedgerSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ProjectName", "Success", "LogPath"},
		{"Alpha", "True", "/a.log"},
		{"Beta", "False", "/b.log"},
		{"Gamma", "", "/c.log"},
	}, rows)

	width, err := f.GetColWidth(LedgerSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("ProjectName")+2), width)
}

func TestExcelWriterEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	tbl, err := FromLedger(staticSource{})
	require.NoError(t, err)

	require.NoError(t, NewExcelWriter().Write(path, []Table{tbl}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, record.Columns, rows[0])
}

func TestExcelWriterNoTables(t *testing.T) {
	assert.Error(t, NewExcelWriter().Write(filepath.Join(t.TempDir(), "x.xlsx"), nil))
}

func TestColumnWidths(t *testing.T) {
	tbl := Table{
		Headers: []string{"A", "Wide", "Long"},
		Rows:    [][]string{{"x", "日本語テキスト", strings.Repeat("x", 200)}},
	}
	assert.Equal(t, []float64{minColWidth, 16, maxColWidth}, columnWidths(tbl))
}

func TestUniqueHeaders(t *testing.T) {
	assert.True(t, uniqueHeaders([]string{"A", "B"}))
	assert.False(t, uniqueHeaders([]string{"A", "A"}))
	assert.False(t, uniqueHeaders([]string{"A", ""}))
}

func TestRunReport(t *testing.T) {
	pm := []parse.PhotoMeshRecord{{ProjectName: "City", Success: "True", LogPath: "/pm.log"}}
	rm := []parse.RealityMeshRecord{{DatasetName: "Harbor", Success: "False", Errors: "a;b", LogPath: "/rm.log"}}
	tables := RunReport(pm, rm, record.Summaries(pm, rm))

	names := make([]string, len(tables))
	for i, tb := range tables {
		names[i] = tb.Sheet
		for _, r := range tb.Rows {
			assert.Len(t, r, len(tb.Headers), "sheet %s", tb.Sheet)
		}
	}
	assert.Equal(t, []string{PhotoMeshSheet, RealityMeshSheet, SummarySheet, HowToSheet, DictionarySheet}, names)

	assert.Equal(t, 33, tables[0].HighlightIndex())
	assert.Equal(t, 25, tables[1].HighlightIndex())
	assert.Equal(t, 9, tables[2].HighlightIndex())
	assert.Equal(t, -1, tables[4].HighlightIndex())

	assert.Equal(t, "/pm.log", tables[0].Rows[0][len(photoMeshHeaders)-1])
	assert.Equal(t, "a;b", tables[1].Rows[0][27])
	assert.Equal(t, "Harbor", tables[2].Rows[0][0])

	for _, row := range tables[4].Rows {
		assert.NotEmpty(t, row[1], "field %s has a description", row[0])
	}
}

func TestRunReportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Report.xlsx")
	require.NoError(t, NewExcelWriter().Write(path, RunReport(nil, nil, nil)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{PhotoMeshSheet, RealityMeshSheet, SummarySheet, HowToSheet, DictionarySheet}, f.GetSheetList())
}
