package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPattern selects log files when walking directories.
const DefaultPattern = "*.log"

// Expand turns input paths into a list of files. Files are kept as given,
// in argument order. Directories are walked and contribute the files whose
// base name matches pattern, sorted. Each path appears once.
func Expand(paths []string, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// unreadable files still yield a record downstream
			add(p)
			continue
		}
		found, err := walkDir(p, pattern)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

func walkDir(root, pattern string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Matches reports whether path's base name matches pattern.
func Matches(path, pattern string) bool {
	if pattern == "" {
		pattern = DefaultPattern
	}
	ok, _ := filepath.Match(pattern, filepath.Base(path))
	return ok
}
