package ledger

import (
	"errors"
	"fmt"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

// MergeResult reports what Merge did. Warning is set, and the merge still
// carried out, when the existing ledger could not be read for dedup.
type MergeResult struct {
	Appended   int
	Duplicates int
	Warning    error
}

// Merge appends every record of batch whose LogPath is neither already in
// the store nor earlier in the batch. Existing rows are never touched.
func Merge(store Store, batch []record.Unified) (MergeResult, error) {
	var res MergeResult

	seen, err := store.Keys()
	switch {
	case errors.Is(err, ErrCorrupt):
		res.Warning = err
		seen = make(map[string]struct{})
	case err != nil:
		return res, fmt.Errorf("read ledger keys: %w", err)
	}

	fresh := make([]record.Unified, 0, len(batch))
	for _, u := range batch {
		key := store.Key(u.LogPath)
		if _, ok := seen[key]; ok {
			res.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, u)
	}

	if err := store.Append(fresh); err != nil {
		return res, fmt.Errorf("append ledger: %w", err)
	}
	res.Appended = len(fresh)
	return res, nil
}
