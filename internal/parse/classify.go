package parse

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// MaxClassifyLines bounds how far into a log Classify looks for markers.
const MaxClassifyLines = 4000

var (
	photoMeshMarkers = []string{
		"SLDEFAULT=>",
		`"MachineName"`,
		`"MsgTime"`,
	}
	realityMeshMarkers = []string{
		"Time to run TT project:",
		"-command_file",
		"Process completed with exit code:",
		"Converted offset:",
	}
)

// ClassifyFile opens path and classifies its content. Unreadable files are
// Unknown.
func ClassifyFile(path string) Kind {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()
	return Classify(f)
}

// Classify returns the kind of the first line carrying a tool marker.
// PhotoMesh markers are checked before RealityMesh ones on each line.
func Classify(r io.Reader) Kind {
	scanner := newLineReader(r)
	for n := 0; n < MaxClassifyLines && scanner.Scan(); n++ {
		line := scanner.Text()
		if containsAny(line, photoMeshMarkers) {
			return PhotoMesh
		}
		if containsAny(line, realityMeshMarkers) {
			return RealityMesh
		}
	}
	return Unknown
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// lineReader yields lines like bufio.Scanner but has no line length limit.
type lineReader struct {
	r    *bufio.Reader
	line string
	err  error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

func (l *lineReader) Scan() bool {
	if l.err != nil {
		return false
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		l.err = err
		if err != io.EOF || s == "" {
			return false
		}
	}
	l.line = strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
	return true
}

func (l *lineReader) Text() string { return l.line }

// Err returns the first non-EOF read error.
func (l *lineReader) Err() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}
