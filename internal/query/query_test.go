package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

var ledgerRecords = []record.Unified{
	{ProjectName: "City", Tool: "PhotoMesh", Success: "True", RunDate: "2024-05-01", Machine: "PM-1", LogPath: "/a.log", IngestedAt: "2024-06-01 10:00:00"},
	{ProjectName: "Harbor", Tool: "RealityMesh", Success: "False", RunDate: "2024-05-03", Errors: "tile 4 failed", LogPath: "/b.log", IngestedAt: "2024-06-01 10:00:00"},
	{ProjectName: "City", Tool: "PhotoMesh", Success: "False", RunDate: "", LogPath: "/c.log", IngestedAt: "2024-06-02 09:00:00"},
}

func paths(rs []record.Unified) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.LogPath
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"all newest first", Options{}, []string{"/c.log", "/b.log", "/a.log"}},
		{"tool", Options{Tool: "photomesh"}, []string{"/c.log", "/a.log"}},
		{"success", Options{Success: "false"}, []string{"/c.log", "/b.log"}},
		{"since skips undated", Options{Since: "2024-05-02"}, []string{"/b.log"}},
		{"text any field", Options{Text: "TILE"}, []string{"/b.log"}},
		{"text all terms", Options{Text: "city pm-1"}, []string{"/a.log"}},
		{"limit", Options{Limit: 1}, []string{"/c.log"}},
		{"no match", Options{Text: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths(Filter(ledgerRecords, tt.opts)))
		})
	}
}

func TestFind(t *testing.T) {
	r, ok := Find(ledgerRecords, "/b.log")
	require.True(t, ok)
	assert.Equal(t, "Harbor", r.ProjectName)

	r, ok = Find(ledgerRecords, "City")
	require.True(t, ok)
	assert.Equal(t, "/c.log", r.LogPath, "latest ingestion wins")

	_, ok = Find(ledgerRecords, "missing")
	assert.False(t, ok)
}

type rows struct {
	header []string
	data   [][]string
	err    error
}

func (r rows) Rows() ([]string, [][]string, error) { return r.header, r.data, r.err }

func TestLoad(t *testing.T) {
	got, err := Load(rows{header: []string{"LogPath", "Tool"}, data: [][]string{{"/x.log", "PhotoMesh"}}})
	require.NoError(t, err)
	assert.Equal(t, []record.Unified{{LogPath: "/x.log", Tool: "PhotoMesh"}}, got)

	_, err = Load(rows{err: errors.New("boom")})
	assert.Error(t, err)
}
