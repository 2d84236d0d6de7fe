package parse

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/meshlog/internal/normalize"
)

var (
	pmKeyValueRe = regexp.MustCompile(`SLDEFAULT=>\s*(\w+)\s*:\s*(.*)`)
	pmMachineRe  = regexp.MustCompile(`"MachineName"\s*:\s*"([^"]+)"`)
	pmMsgTimeRe  = regexp.MustCompile(`"MsgTime"\s*:\s*"([^"]+)"`)
	pmExitCodeRe = regexp.MustCompile(`Finished with exit code\s*\((\d+)\)`)
)

// ParsePhotoMesh extracts a PhotoMesh record from the log at path. It never
// fails: an unreadable file yields a record holding only LogPath and
// ProjectName.
func ParsePhotoMesh(path string) PhotoMeshRecord {
	f, err := os.Open(path)
	if err != nil {
		return PhotoMeshRecord{LogPath: path, ProjectName: fileStem(path)}
	}
	defer f.Close()
	return ParsePhotoMeshReader(path, f)
}

// ParsePhotoMeshReader is ParsePhotoMesh over an already opened source.
func ParsePhotoMeshReader(path string, r io.Reader) PhotoMeshRecord {
	rec := PhotoMeshRecord{LogPath: path, ProjectName: fileStem(path)}

	var warnings, errs int
	scanner := newLineReader(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := pmMachineRe.FindStringSubmatch(line); m != nil {
			rec.Machine = m[1]
		}
		if m := pmMsgTimeRe.FindStringSubmatch(line); m != nil {
			if rec.StartTime == "" {
				rec.StartTime = m[1]
			}
			rec.EndTime = m[1]
		}
		if m := pmKeyValueRe.FindStringSubmatch(line); m != nil {
			rec.set(m[1], normalize.Trim(m[2]))
		}
		if strings.Contains(line, "Warning") {
			warnings++
		}
		if strings.Contains(line, "Error") {
			errs++
		}
		if m := pmExitCodeRe.FindStringSubmatch(line); m != nil {
			rec.Success = exitCodeSuccess(m[1])
		}
	}

	// a partly read log says nothing about success
	if rec.Success == "" && scanner.Err() == nil {
		rec.Success = boolString(errs == 0)
	}
	rec.Warnings = countString(warnings)
	rec.Errors = countString(errs)
	rec.Duration = normalize.ComputeDuration(rec.StartTime, rec.EndTime)
	return rec
}

// set assigns a SLDEFAULT key/value pair. Unknown keys are ignored.
func (r *PhotoMeshRecord) set(key, val string) {
	switch key {
	case "BuildID":
		r.BuildID = val
	case "HostIP":
		r.HostIP = val
	case "User":
		r.User = val
	case "ExportType":
		r.ExportType = val
	case "Resolution":
		r.Resolution = val
	case "TileScheme":
		r.TileScheme = val
	case "PhotosUsed":
		r.PhotosUsed = val
	case "PhotoFolders":
		r.PhotoFolders = val
	case "PhotoCoverage":
		r.PhotoCoverage = val
	case "FusersUsed":
		r.FusersUsed = val
	case "CPUThreads":
		r.CPUThreads = val
	case "GPUCount":
		r.GPUCount = val
	case "OutputFolder":
		r.OutputFolder = val
	case "TotalFiles":
		r.TotalFiles = val
	case "TotalSize":
		r.TotalSizeGB = normalize.SizeToGB(val)
	case "Offset_CoordSys":
		r.OffsetCoordSys = val
	case "Offset_HDatum":
		r.OffsetHDatum = val
	case "Offset_VDatum":
		r.OffsetVDatum = val
	case "OffsetX":
		r.OffsetX = val
	case "OffsetY":
		r.OffsetY = val
	case "OffsetZ":
		r.OffsetZ = val
	case "PivotCenterX":
		r.PivotCenterX = val
	case "PivotCenterY":
		r.PivotCenterY = val
	case "PivotCenterZ":
		r.PivotCenterZ = val
	case "FlipYZ":
		r.FlipYZ = val
	case "Trim":
		r.Trim = val
	case "Collision":
		r.Collision = val
	case "VisualLOD":
		r.VisualLOD = val
	}
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func exitCodeSuccess(code string) string {
	return boolString(code == "0")
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// countString renders n, or "" for zero.
func countString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
