// Package query filters ledger records for the list command and the TUI.
package query

import (
	"sort"
	"strings"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

type Options struct {
	Text    string // every whitespace separated term must match, case-insensitive
	Tool    string // "" = all, "photomesh", "realitymesh"
	Success string // "" = all, "true", "false"
	Since   string // "" = no filter, e.g. "2024-01-01", compared to RunDate
	Limit   int    // 0 = no limit
}

// RowSource is the read side of a ledger.
type RowSource interface {
	Rows() (header []string, rows [][]string, err error)
}

// Load reads every ledger row as a record, in ledger order.
func Load(src RowSource) ([]record.Unified, error) {
	header, rows, err := src.Rows()
	if err != nil {
		return nil, err
	}
	out := make([]record.Unified, 0, len(rows))
	for _, r := range rows {
		out = append(out, record.FromValues(header, r))
	}
	return out, nil
}

// Filter returns the records matching opts, most recently ingested first.
// Records ingested together keep their reverse ledger order.
func Filter(records []record.Unified, opts Options) []record.Unified {
	terms := strings.Fields(strings.ToLower(opts.Text))

	var out []record.Unified
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if opts.Tool != "" && !strings.EqualFold(r.Tool, opts.Tool) {
			continue
		}
		if opts.Success != "" && !strings.EqualFold(r.Success, opts.Success) {
			continue
		}
		if opts.Since != "" && (r.RunDate == "" || r.RunDate < opts.Since) {
			continue
		}
		if !matchesAll(r, terms) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IngestedAt > out[j].IngestedAt
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func matchesAll(r record.Unified, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := strings.ToLower(strings.Join([]string{
		r.ProjectName, r.DatasetName, r.Machine, r.ExportType, r.Errors, r.LogPath,
	}, "\x00"))
	for _, t := range terms {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

// Find resolves key to one record: an exact LogPath match first, else the
// most recently ingested record whose ProjectName equals key.
func Find(records []record.Unified, key string) (record.Unified, bool) {
	for _, r := range records {
		if r.LogPath == key {
			return r, true
		}
	}
	var best record.Unified
	found := false
	for _, r := range records {
		if r.ProjectName == key && (!found || r.IngestedAt >= best.IngestedAt) {
			best, found = r, true
		}
	}
	return best, found
}
