package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

const pragmas = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;
`

// schema creates one TEXT column per ledger column. seq keeps append order.
var schema = func() string {
	var b strings.Builder
	b.WriteString(pragmas)
	b.WriteString("CREATE TABLE IF NOT EXISTS ledger (\n    seq INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, c := range record.Columns {
		b.WriteString(",\n    ")
		b.WriteString(quoteIdent(c))
		b.WriteString(" TEXT NOT NULL DEFAULT ''")
		if c == record.KeyColumn {
			b.WriteString(" UNIQUE")
		}
	}
	b.WriteString("\n);\n")
	return b.String()
}()

var (
	columnList = func() string {
		quoted := make([]string, len(record.Columns))
		for i, c := range record.Columns {
			quoted[i] = quoteIdent(c)
		}
		return strings.Join(quoted, ", ")
	}()
	insertSQL = "INSERT INTO ledger (" + columnList + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(record.Columns)), ", ") + ")"
)

// SQLiteStore keeps the ledger in a single SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

// Key returns logPath unchanged; cells are stored verbatim.
func (s *SQLiteStore) Key(logPath string) string { return logPath }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Keys() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT " + quoteIdent(record.KeyColumn) + " FROM ledger")
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Append(batch []record.Unified) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range batch {
		vals := u.Values()
		args := make([]any, len(vals))
		for i, v := range vals {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert %s: %w", u.LogPath, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Rows() ([]string, [][]string, error) {
	rows, err := s.db.Query("SELECT " + columnList + " FROM ledger ORDER BY seq")
	if err != nil {
		return nil, nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, len(record.Columns))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	header := append([]string(nil), record.Columns...)
	return header, out, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
