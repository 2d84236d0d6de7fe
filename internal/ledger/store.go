// Package ledger persists unified records as an append-only table keyed by
// the source log path.
//
// A ledger directory must only be written by one process at a time. No
// locking is done; concurrent ingestion runs against the same directory
// can interleave rows or duplicate keys.
package ledger

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

var (
	// ErrCorrupt marks a ledger whose header cannot be used for dedup.
	ErrCorrupt = errors.New("ledger corrupt")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown ledger backend")
)

const (
	BackendTSV    = "tsv"
	BackendSQLite = "sqlite"

	TSVFile    = "All_Exports.tsv"
	SQLiteFile = "All_Exports.db"
)

// Store is a durable ledger. Implementations only ever append.
type Store interface {
	// Keys reads the whole ledger and returns every LogPath in it. A
	// header the key column cannot be found in yields an error wrapping
	// ErrCorrupt.
	Keys() (map[string]struct{}, error)
	// Key maps a LogPath to the form Keys reports it in once stored.
	Key(logPath string) string
	// Append writes rows after the existing ones, creating the ledger with
	// its header first when it does not exist yet.
	Append(rows []record.Unified) error
	// Rows returns the stored header and rows in append order. An absent
	// ledger returns a nil header.
	Rows() (header []string, rows [][]string, err error)
	Path() string
	Close() error
}

// Open returns the store for backend inside dir. An empty backend means
// BackendTSV.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendTSV:
		return OpenTSV(filepath.Join(dir, TSVFile))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFile))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
