package parse

// Kind identifies which tool produced a log.
type Kind int

const (
	Unknown Kind = iota
	PhotoMesh
	RealityMesh
)

func (k Kind) String() string {
	switch k {
	case PhotoMesh:
		return "PhotoMesh"
	case RealityMesh:
		return "RealityMesh"
	default:
		return "Unknown"
	}
}

// PhotoMeshRecord holds the fields extracted from one PhotoMesh build log.
// Every field is "" when not found; LogPath is always set.
type PhotoMeshRecord struct {
	ProjectName    string
	BuildID        string
	Machine        string
	HostIP         string
	User           string
	StartTime      string
	EndTime        string
	Duration       string // HH:MM:SS
	ExportType     string
	Resolution     string
	TileScheme     string
	PhotosUsed     string
	PhotoFolders   string
	PhotoCoverage  string
	FusersUsed     string
	CPUThreads     string
	GPUCount       string
	OutputFolder   string
	TotalFiles     string
	TotalSizeGB    string
	OffsetCoordSys string
	OffsetHDatum   string
	OffsetVDatum   string
	OffsetX        string
	OffsetY        string
	OffsetZ        string
	PivotCenterX   string
	PivotCenterY   string
	PivotCenterZ   string
	FlipYZ         string
	Trim           string
	Collision      string
	VisualLOD      string
	Success        string // "True", "False" or ""
	Warnings       string // count, "" when zero
	Errors         string // count, "" when zero
	LogPath        string
}

// RealityMeshRecord holds the fields extracted from one RealityMesh log.
type RealityMeshRecord struct {
	ProjectName    string
	DatasetName    string
	Machine        string
	HostIP         string
	User           string
	StartTime      string
	EndTime        string
	Duration       string
	ProcessPreset  string
	ExportType     string
	SelAreaSize    string
	Resolution     string
	TileScheme     string
	OffsetCoordSys string
	OffsetHDatum   string
	OffsetVDatum   string
	OffsetX        string
	OffsetY        string
	OffsetZ        string
	PivotCenterX   string
	PivotCenterY   string
	PivotCenterZ   string
	FlipYZ         string
	Trim           string
	Collision      string
	VisualLOD      string
	OutputFolder   string
	TotalFiles     string
	TotalSizeGB    string
	Success        string
	Warnings       string
	Errors         string // ";"-joined messages, or the count when none were captured
	LogPath        string
}

// IsBlank reports whether nothing that identifies a run was extracted.
func (r PhotoMeshRecord) IsBlank() bool {
	return r.Machine == "" && r.Duration == "" && r.Success == "" && r.ExportType == ""
}

// IsBlank reports whether nothing that identifies a run was extracted.
func (r RealityMeshRecord) IsBlank() bool {
	return r.Machine == "" && r.Duration == "" && r.Success == "" && r.ExportType == ""
}
