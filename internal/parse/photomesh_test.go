package parse

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photoMeshLog = `{"MsgTime": "2024-05-01T08:00:00Z", "MachineName": "PM-NODE-1", "Msg": "start"}
SLDEFAULT=> BuildID : 7.4.1
SLDEFAULT=> ExportType : 3DML
SLDEFAULT=> Resolution : 0.05
SLDEFAULT=> TileScheme : Quadtree
SLDEFAULT=> PhotosUsed : 1200
SLDEFAULT=> PhotoFolders : 3
SLDEFAULT=> PhotoCoverage : 2.4
SLDEFAULT=> FusersUsed : 4
SLDEFAULT=> CPUThreads : 32
SLDEFAULT=> GPUCount : 2
SLDEFAULT=> OutputFolder :   D:\out\city   
SLDEFAULT=> TotalFiles : 880
SLDEFAULT=> TotalSize : 5120 MB
SLDEFAULT=> Offset_CoordSys : UTM 33N
SLDEFAULT=> OffsetX : 100.5
SLDEFAULT=> OffsetY : -20
SLDEFAULT=> OffsetZ : 3
SLDEFAULT=> PivotCenterX : 1
SLDEFAULT=> FlipYZ : true
SLDEFAULT=> VisualLOD : 12
SLDEFAULT=> SomethingElse : ignored
{"MsgTime": "2024-05-01T09:30:15Z", "MachineName": "PM-NODE-2", "Msg": "Warning: low disk"}
{"MsgTime": "2024-05-01T10:15:45Z", "Msg": "done"}
Finished with exit code (0)
`

func TestParsePhotoMeshReader(t *testing.T) {
	rec := ParsePhotoMeshReader(`C:/logs/CityBuild.log`, strings.NewReader(photoMeshLog))

	assert.Equal(t, "C:/logs/CityBuild.log", rec.LogPath)
	assert.Equal(t, "CityBuild", rec.ProjectName)
	assert.Equal(t, "7.4.1", rec.BuildID)
	assert.Equal(t, "PM-NODE-2", rec.Machine, "last machine name wins")
	assert.Equal(t, "2024-05-01T08:00:00Z", rec.StartTime)
	assert.Equal(t, "2024-05-01T10:15:45Z", rec.EndTime)
	assert.Equal(t, "02:15:45", rec.Duration)
	assert.Equal(t, "3DML", rec.ExportType)
	assert.Equal(t, "0.05", rec.Resolution)
	assert.Equal(t, "Quadtree", rec.TileScheme)
	assert.Equal(t, "1200", rec.PhotosUsed)
	assert.Equal(t, "3", rec.PhotoFolders)
	assert.Equal(t, "2.4", rec.PhotoCoverage)
	assert.Equal(t, "4", rec.FusersUsed)
	assert.Equal(t, "32", rec.CPUThreads)
	assert.Equal(t, "2", rec.GPUCount)
	assert.Equal(t, `D:\out\city`, rec.OutputFolder)
	assert.Equal(t, "880", rec.TotalFiles)
	assert.Equal(t, "5.00", rec.TotalSizeGB)
	assert.Equal(t, "UTM 33N", rec.OffsetCoordSys)
	assert.Equal(t, "100.5", rec.OffsetX)
	assert.Equal(t, "-20", rec.OffsetY)
	assert.Equal(t, "3", rec.OffsetZ)
	assert.Equal(t, "1", rec.PivotCenterX)
	assert.Equal(t, "true", rec.FlipYZ)
	assert.Equal(t, "12", rec.VisualLOD)
	assert.Equal(t, "True", rec.Success)
	assert.Equal(t, "1", rec.Warnings)
	assert.Equal(t, "", rec.Errors)
	assert.Equal(t, "", rec.HostIP)
	assert.Equal(t, "", rec.Trim)
}

func TestParsePhotoMeshSuccess(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantSuccess string
		wantErrors  string
	}{
		{"exit zero no errors", "Finished with exit code (0)\n", "True", ""},
		{"exit nonzero", "Finished with exit code (3)\n", "False", ""},
		{"exit zero overrides errors", "Error one\nError two\nFinished with exit code (0)\n", "True", "2"},
		{"inferred from errors", "some Error here\n", "False", "1"},
		{"inferred clean", "all good\n", "True", ""},
		{"last exit code wins", "Finished with exit code (1)\nFinished with exit code (0)\n", "True", ""},
		{"substring counting", "ErrorCount=0\nNo Errors\n", "False", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ParsePhotoMeshReader("x.log", strings.NewReader(tt.content))
			assert.Equal(t, tt.wantSuccess, rec.Success)
			assert.Equal(t, tt.wantErrors, rec.Errors)
		})
	}
}

func TestParsePhotoMeshUnparseableTimes(t *testing.T) {
	content := `"MsgTime": "yesterday"` + "\n" + `"MsgTime": "today"` + "\n"
	rec := ParsePhotoMeshReader("x.log", strings.NewReader(content))

	assert.Equal(t, "yesterday", rec.StartTime)
	assert.Equal(t, "today", rec.EndTime)
	assert.Equal(t, "", rec.Duration)
}

func TestParsePhotoMeshUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Missing Project.log")
	rec := ParsePhotoMesh(path)

	assert.Equal(t, PhotoMeshRecord{LogPath: path, ProjectName: "Missing Project"}, rec)
	assert.True(t, rec.IsBlank())
}

func TestParsePhotoMeshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Harbor.log")
	require.NoError(t, os.WriteFile(path, []byte(photoMeshLog), 0o644))

	rec := ParsePhotoMesh(path)
	assert.Equal(t, "Harbor", rec.ProjectName)
	assert.Equal(t, "True", rec.Success)
	assert.False(t, rec.IsBlank())
}

func TestParsePhotoMeshLongLine(t *testing.T) {
	content := "Error one\n" + strings.Repeat("z", 11*1024*1024) + "\nFinished with exit code (0)\n"
	rec := ParsePhotoMeshReader("x.log", strings.NewReader(content))

	assert.Equal(t, "True", rec.Success, "lines after an oversized line are still read")
	assert.Equal(t, "1", rec.Errors)
}

func TestParsePhotoMeshReadFailure(t *testing.T) {
	src := io.MultiReader(strings.NewReader("all good so far\n"), iotest.ErrReader(errors.New("io")))
	rec := ParsePhotoMeshReader("x.log", src)

	assert.Equal(t, "", rec.Success, "success is not inferred from a partial read")
	assert.Equal(t, "x.log", rec.LogPath)
}
