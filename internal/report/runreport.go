package report

import (
	"sort"

	"github.com/Zuo-Peng/meshlog/internal/parse"
	"github.com/Zuo-Peng/meshlog/internal/record"
)

// Per-run workbook sheet names.
const (
	PhotoMeshSheet   = "PhotoMesh_Exports"
	RealityMeshSheet = "RealityMesh_Exports"
	SummarySheet     = "Summary"
	HowToSheet       = "HowTo"
	DictionarySheet  = "Data_Dictionary"
)

var photoMeshHeaders = []string{
	"ProjectName", "BuildID", "Machine", "HostIP", "User", "StartTime", "EndTime",
	"Duration(hh:mm:ss)", "ExportType", "Resolution", "TileScheme", "PhotosUsed",
	"PhotoFolders", "PhotoCoverage(km²)", "FusersUsed", "CPUThreads", "GPUCount",
	"OutputFolder", "TotalFiles", "TotalSize(GB)", "Offset_CoordSys", "Offset_HDatum",
	"Offset_VDatum", "OffsetX", "OffsetY", "OffsetZ", "PivotCenterX", "PivotCenterY",
	"PivotCenterZ", "FlipYZ", "Trim", "Collision", "VisualLOD", "Success", "Warnings",
	"Errors", "LogPath",
}

var realityMeshHeaders = []string{
	"ProjectName", "DatasetName", "Machine", "HostIP", "User", "StartTime", "EndTime",
	"Duration(hh:mm:ss)", "ProcessPreset", "ExportType", "SelAreaSize(km²)", "Resolution",
	"TileScheme", "Offset_CoordSys", "Offset_HDatum", "Offset_VDatum", "OffsetX",
	"OffsetY", "OffsetZ", "FlipYZ", "Trim", "Collision", "OutputFolder", "TotalFiles",
	"TotalSize(GB)", "Success", "Warnings", "Errors", "LogPath",
}

var summaryHeaders = []string{
	"ProjectName", "RunDate", "Tool", "ExportType", "Duration(hh:mm:ss)", "TotalSize(GB)",
	"PhotosUsed", "FusersUsed", "Machine", "Success", "Errors",
}

var fieldDescriptions = map[string]string{
	"ProjectName":        "Project name; the log file name when the log does not state one",
	"DatasetName":        "RealityMesh dataset from the -command_file argument",
	"BuildID":            "PhotoMesh build identifier",
	"Machine":            "Machine that ran the job",
	"HostIP":             "Address of the machine that ran the job",
	"User":               "Account that ran the job",
	"StartTime":          "First message time in the log",
	"EndTime":            "Last message time in the log",
	"Duration(hh:mm:ss)": "Elapsed run time",
	"RunDate":            "Date part of StartTime, or of EndTime when StartTime is empty",
	"Tool":               "PhotoMesh or RealityMesh",
	"ProcessPreset":      "RealityMesh processing preset",
	"ExportType":         "Output format of the build",
	"SelAreaSize(km²)":   "Selected area",
	"Resolution":         "Output resolution",
	"TileScheme":         "Output tiling scheme",
	"PhotosUsed":         "Number of photos used",
	"PhotoFolders":       "Number of photo folders",
	"PhotoCoverage(km²)": "Area covered by the photos",
	"FusersUsed":         "Number of fuser nodes",
	"CPUThreads":         "CPU threads available to the build",
	"GPUCount":           "GPUs available to the build",
	"OutputFolder":       "Where the build wrote its output",
	"TotalFiles":         "Number of output files",
	"TotalSize(GB)":      "Output size in GB (1024-based)",
	"Offset_CoordSys":    "Coordinate system of the offset",
	"Offset_HDatum":      "Horizontal datum of the offset",
	"Offset_VDatum":      "Vertical datum of the offset",
	"OffsetX":            "Offset X; for RealityMesh the converted offset when logged",
	"OffsetY":            "Offset Y",
	"OffsetZ":            "Offset Z",
	"PivotCenterX":       "Pivot center X",
	"PivotCenterY":       "Pivot center Y",
	"PivotCenterZ":       "Pivot center Z",
	"FlipYZ":             "Whether Y and Z axes were swapped",
	"Trim":               "Trim setting",
	"Collision":          "Collision setting",
	"VisualLOD":          "Visual level of detail",
	"Success":            "True when the tool exited with code 0, or logged no errors when no exit code was found",
	"Warnings":           "Number of lines mentioning Warning; empty when none",
	"Errors":             "PhotoMesh: number of lines mentioning Error. RealityMesh: the logged error messages joined by ';'",
	"LogPath":            "Source log; identifies the run in the ledger",
}

// RunReport builds the per-run workbook straight from extracted records.
// It does not touch the ledger.
func RunReport(pm []parse.PhotoMeshRecord, rm []parse.RealityMeshRecord, summaries []record.Summary) []Table {
	pmRows := make([][]string, 0, len(pm))
	for _, r := range pm {
		pmRows = append(pmRows, photoMeshRow(r))
	}
	rmRows := make([][]string, 0, len(rm))
	for _, r := range rm {
		rmRows = append(rmRows, realityMeshRow(r))
	}
	sumRows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		sumRows = append(sumRows, s.Values())
	}

	return []Table{
		{Sheet: PhotoMeshSheet, Headers: photoMeshHeaders, Rows: pmRows, Highlight: &SuccessHighlight},
		{Sheet: RealityMeshSheet, Headers: realityMeshHeaders, Rows: rmRows, Highlight: &SuccessHighlight},
		{Sheet: SummarySheet, Headers: summaryHeaders, Rows: sumRows, Highlight: &SuccessHighlight},
		howTo(),
		dataDictionary(),
	}
}

func photoMeshRow(r parse.PhotoMeshRecord) []string {
	return []string{
		r.ProjectName, r.BuildID, r.Machine, r.HostIP, r.User, r.StartTime, r.EndTime,
		r.Duration, r.ExportType, r.Resolution, r.TileScheme, r.PhotosUsed,
		r.PhotoFolders, r.PhotoCoverage, r.FusersUsed, r.CPUThreads, r.GPUCount,
		r.OutputFolder, r.TotalFiles, r.TotalSizeGB, r.OffsetCoordSys, r.OffsetHDatum,
		r.OffsetVDatum, r.OffsetX, r.OffsetY, r.OffsetZ, r.PivotCenterX, r.PivotCenterY,
		r.PivotCenterZ, r.FlipYZ, r.Trim, r.Collision, r.VisualLOD, r.Success, r.Warnings,
		r.Errors, r.LogPath,
	}
}

func realityMeshRow(r parse.RealityMeshRecord) []string {
	return []string{
		r.ProjectName, r.DatasetName, r.Machine, r.HostIP, r.User, r.StartTime, r.EndTime,
		r.Duration, r.ProcessPreset, r.ExportType, r.SelAreaSize, r.Resolution,
		r.TileScheme, r.OffsetCoordSys, r.OffsetHDatum, r.OffsetVDatum, r.OffsetX,
		r.OffsetY, r.OffsetZ, r.FlipYZ, r.Trim, r.Collision, r.OutputFolder, r.TotalFiles,
		r.TotalSizeGB, r.Success, r.Warnings, r.Errors, r.LogPath,
	}
}

func howTo() Table {
	return Table{
		Sheet:   HowToSheet,
		Headers: []string{"Usage"},
		Rows: [][]string{
			{"meshlog ingest --mode report --photomesh pm.log --realitymesh rm.log --report Report.xlsx"},
			{"meshlog ingest <logs or folders>   classify each log and add it to the ledger"},
			{"meshlog rebuild   regenerate All_Exports.xlsx from the ledger"},
		},
	}
}

func dataDictionary() Table {
	set := make(map[string]struct{})
	for _, hs := range [][]string{photoMeshHeaders, realityMeshHeaders, summaryHeaders} {
		for _, h := range hs {
			set[h] = struct{}{}
		}
	}
	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f, fieldDescriptions[f]})
	}
	return Table{Sheet: DictionarySheet, Headers: []string{"Field", "Description"}, Rows: rows}
}
