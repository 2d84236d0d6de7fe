package record

// Columns is the ledger header, in storage order.
var Columns = []string{
	"ProjectName", "Tool", "DatasetName", "BuildID", "StartTime", "EndTime",
	"Duration", "RunDate", "ProcessPreset", "ExportType", "SelAreaSize",
	"Resolution", "TileScheme", "PhotosUsed", "PhotoFolders", "PhotoCoverage",
	"FusersUsed", "CPUThreads", "GPUCount", "Machine", "HostIP", "User",
	"OutputFolder", "TotalFiles", "TotalSizeGB", "Offset_CoordSys",
	"Offset_HDatum", "Offset_VDatum", "OffsetX", "OffsetY", "OffsetZ",
	"PivotCenterX", "PivotCenterY", "PivotCenterZ", "FlipYZ", "Trim",
	"Collision", "VisualLOD", "Success", "Warnings", "Errors", "LogPath",
	"IngestedAt",
}

// KeyColumn names the dedup key column.
const KeyColumn = "LogPath"

// fields returns pointers to every field in Columns order.
func (u *Unified) fields() []*string {
	return []*string{
		&u.ProjectName, &u.Tool, &u.DatasetName, &u.BuildID, &u.StartTime, &u.EndTime,
		&u.Duration, &u.RunDate, &u.ProcessPreset, &u.ExportType, &u.SelAreaSize,
		&u.Resolution, &u.TileScheme, &u.PhotosUsed, &u.PhotoFolders, &u.PhotoCoverage,
		&u.FusersUsed, &u.CPUThreads, &u.GPUCount, &u.Machine, &u.HostIP, &u.User,
		&u.OutputFolder, &u.TotalFiles, &u.TotalSizeGB, &u.OffsetCoordSys,
		&u.OffsetHDatum, &u.OffsetVDatum, &u.OffsetX, &u.OffsetY, &u.OffsetZ,
		&u.PivotCenterX, &u.PivotCenterY, &u.PivotCenterZ, &u.FlipYZ, &u.Trim,
		&u.Collision, &u.VisualLOD, &u.Success, &u.Warnings, &u.Errors, &u.LogPath,
		&u.IngestedAt,
	}
}

// Values returns the row cells in Columns order.
func (u Unified) Values() []string {
	fs := u.fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = *f
	}
	return out
}

// FromValues rebuilds a record from a row read under header. Columns missing
// from header stay empty; unknown header names and surplus cells are ignored.
func FromValues(header, cells []string) Unified {
	var u Unified
	fs := u.fields()
	for i, name := range header {
		if i >= len(cells) {
			break
		}
		if idx := ColumnIndex(name); idx >= 0 {
			*fs[idx] = cells[i]
		}
	}
	return u
}

// ColumnIndex returns the position of name in Columns, or -1.
func ColumnIndex(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return -1
}
