package parse

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/meshlog/internal/normalize"
)

var (
	rmCommandFileRe  = regexp.MustCompile(`-command_file\s+"([^"]+)"`)
	rmExitCodeRe     = regexp.MustCompile(`Process completed with exit code:\s*(\d+)`)
	rmRunTimeRe      = regexp.MustCompile(`Time to run TT project:\s*([0-9]+)\s*seconds`)
	rmInputOffsetRe  = regexp.MustCompile(`Input offset:\s*([\-0-9.]+)\s+([\-0-9.]+)\s+([\-0-9.]+)`)
	rmConvertedOffRe = regexp.MustCompile(`Converted offset:\s*([\-0-9.]+)\s+([\-0-9.]+)\s+([\-0-9.]+)`)
)

const errorMarker = "Error:"

// ParseRealityMesh extracts a RealityMesh record from the log at path. Like
// ParsePhotoMesh it never fails.
func ParseRealityMesh(path string) RealityMeshRecord {
	f, err := os.Open(path)
	if err != nil {
		return RealityMeshRecord{LogPath: path, ProjectName: fileStem(path)}
	}
	defer f.Close()
	return ParseRealityMeshReader(path, f)
}

// ParseRealityMeshReader is ParseRealityMesh over an already opened source.
func ParseRealityMeshReader(path string, r io.Reader) RealityMeshRecord {
	rec := RealityMeshRecord{LogPath: path, ProjectName: fileStem(path)}

	var errCount int
	scanner := newLineReader(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := rmCommandFileRe.FindStringSubmatch(line); m != nil {
			rec.DatasetName = m[1]
		}
		// converted offset is matched after input offset so it wins
		if m := rmInputOffsetRe.FindStringSubmatch(line); m != nil {
			rec.OffsetX, rec.OffsetY, rec.OffsetZ = m[1], m[2], m[3]
		}
		if m := rmConvertedOffRe.FindStringSubmatch(line); m != nil {
			rec.OffsetX, rec.OffsetY, rec.OffsetZ = m[1], m[2], m[3]
		}
		if m := rmExitCodeRe.FindStringSubmatch(line); m != nil {
			rec.Success = exitCodeSuccess(m[1])
		}
		if m := rmRunTimeRe.FindStringSubmatch(line); m != nil {
			if secs, err := strconv.Atoi(m[1]); err == nil {
				rec.Duration = normalize.SecondsToHHMMSS(secs)
			}
		}
		if idx := strings.Index(line, errorMarker); idx >= 0 {
			errCount++
			// an empty first message leaves no separator behind
			if rec.Errors != "" {
				rec.Errors += ";"
			}
			rec.Errors += normalize.Trim(line[idx+len(errorMarker):])
		}
	}

	if rec.Success == "" && scanner.Err() == nil {
		rec.Success = boolString(errCount == 0)
	}
	if rec.Errors == "" && errCount > 0 {
		rec.Errors = strconv.Itoa(errCount)
	}
	return rec
}
