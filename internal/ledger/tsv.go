package ledger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

var cellSanitizer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// TSVStore keeps the ledger as a tab separated file with a header row.
type TSVStore struct {
	path string
}

// OpenTSV prepares a TSV ledger at path. The file itself is created on the
// first Append.
func OpenTSV(path string) (*TSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &TSVStore{path: path}, nil
}

func (s *TSVStore) Path() string { return s.path }

func (s *TSVStore) Close() error { return nil }

func (s *TSVStore) Keys() (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := s.scan(func(header []string) (func([]string), error) {
		idx := indexOf(header, record.KeyColumn)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s: header has no %s column", ErrCorrupt, s.path, record.KeyColumn)
		}
		return func(cells []string) {
			if idx < len(cells) {
				keys[cells[idx]] = struct{}{}
			}
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *TSVStore) Rows() ([]string, [][]string, error) {
	var header []string
	var rows [][]string
	err := s.scan(func(h []string) (func([]string), error) {
		header = h
		return func(cells []string) { rows = append(rows, cells) }, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// scan reads the header and hands it to start, which returns the per-row
// callback. A missing or empty file calls nothing.
func (s *TSVStore) scan(start func(header []string) (func([]string), error)) error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read ledger %s: %w", s.path, err)
		}
		return nil
	}
	each, err := start(splitRow(scanner.Text()))
	if err != nil {
		return err
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimRight(line, "\r") == "" {
			continue
		}
		each(splitRow(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ledger %s: %w", s.path, err)
	}
	return nil
}

// Key returns logPath as it reads back from the file.
func (s *TSVStore) Key(logPath string) string {
	return cellSanitizer.Replace(logPath)
}

func (s *TSVStore) Append(rows []record.Unified) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	if err := writeRows(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write ledger %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger %s: %w", s.path, err)
	}
	return nil
}

func writeRows(f *os.File, rows []record.Unified) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if info.Size() == 0 {
		if err := writeRow(w, record.Columns); err != nil {
			return err
		}
	} else {
		// a ledger cut off mid-line must not swallow the next row
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return err
		}
		if last[0] != '\n' {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	for _, u := range rows {
		if err := writeRow(w, u.Values()); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeRow(w io.Writer, cells []string) error {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = cellSanitizer.Replace(c)
	}
	_, err := io.WriteString(w, strings.Join(clean, "\t")+"\n")
	return err
}

func splitRow(line string) []string {
	line = strings.NewReplacer("\r", "", "\n", "").Replace(line)
	return strings.Split(line, "\t")
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
