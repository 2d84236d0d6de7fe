package record

import (
	"time"

	"github.com/Zuo-Peng/meshlog/internal/normalize"
	"github.com/Zuo-Peng/meshlog/internal/parse"
)

// IngestedAtLayout is the UTC layout of Unified.IngestedAt.
const IngestedAtLayout = "2006-01-02 15:04:05"

// Unified is one ledger row: the union of both tool record schemas plus the
// originating tool and the ingestion instant.
type Unified struct {
	ProjectName    string
	Tool           string
	DatasetName    string
	BuildID        string
	StartTime      string
	EndTime        string
	Duration       string
	RunDate        string
	ProcessPreset  string
	ExportType     string
	SelAreaSize    string
	Resolution     string
	TileScheme     string
	PhotosUsed     string
	PhotoFolders   string
	PhotoCoverage  string
	FusersUsed     string
	CPUThreads     string
	GPUCount       string
	Machine        string
	HostIP         string
	User           string
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
	Success        string
	Warnings       string
	Errors         string
	LogPath        string
	IngestedAt     string
}

// Unify maps both record lists into unified rows, PhotoMesh first, each list
// in input order. Every row shares one IngestedAt taken from now.
func Unify(pm []parse.PhotoMeshRecord, rm []parse.RealityMeshRecord, now time.Time) []Unified {
	ingested := now.UTC().Format(IngestedAtLayout)
	out := make([]Unified, 0, len(pm)+len(rm))
	for _, r := range pm {
		out = append(out, FromPhotoMesh(r, ingested))
	}
	for _, r := range rm {
		out = append(out, FromRealityMesh(r, ingested))
	}
	return out
}

// FromPhotoMesh converts a single PhotoMesh record.
func FromPhotoMesh(r parse.PhotoMeshRecord, ingestedAt string) Unified {
	return Unified{
		ProjectName:    r.ProjectName,
		Tool:           parse.PhotoMesh.String(),
		BuildID:        r.BuildID,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Duration:       r.Duration,
		RunDate:        runDate(r.StartTime, r.EndTime),
		ExportType:     r.ExportType,
		Resolution:     r.Resolution,
		TileScheme:     r.TileScheme,
		PhotosUsed:     r.PhotosUsed,
		PhotoFolders:   r.PhotoFolders,
		PhotoCoverage:  r.PhotoCoverage,
		FusersUsed:     r.FusersUsed,
		CPUThreads:     r.CPUThreads,
		GPUCount:       r.GPUCount,
		Machine:        r.Machine,
		HostIP:         r.HostIP,
		User:           r.User,
		OutputFolder:   r.OutputFolder,
		TotalFiles:     r.TotalFiles,
		TotalSizeGB:    r.TotalSizeGB,
		OffsetCoordSys: r.OffsetCoordSys,
		OffsetHDatum:   r.OffsetHDatum,
		OffsetVDatum:   r.OffsetVDatum,
		OffsetX:        r.OffsetX,
		OffsetY:        r.OffsetY,
		OffsetZ:        r.OffsetZ,
		PivotCenterX:   r.PivotCenterX,
		PivotCenterY:   r.PivotCenterY,
		PivotCenterZ:   r.PivotCenterZ,
		FlipYZ:         r.FlipYZ,
		Trim:           r.Trim,
		Collision:      r.Collision,
		VisualLOD:      r.VisualLOD,
		Success:        r.Success,
		Warnings:       r.Warnings,
		Errors:         r.Errors,
		LogPath:        r.LogPath,
		IngestedAt:     ingestedAt,
	}
}

// FromRealityMesh converts a single RealityMesh record. An empty project
// name falls back to the dataset name.
func FromRealityMesh(r parse.RealityMeshRecord, ingestedAt string) Unified {
	project := r.ProjectName
	if project == "" {
		project = r.DatasetName
	}
	return Unified{
		ProjectName:    project,
		Tool:           parse.RealityMesh.String(),
		DatasetName:    r.DatasetName,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Duration:       r.Duration,
		RunDate:        runDate(r.StartTime, r.EndTime),
		ProcessPreset:  r.ProcessPreset,
		ExportType:     r.ExportType,
		SelAreaSize:    r.SelAreaSize,
		Resolution:     r.Resolution,
		TileScheme:     r.TileScheme,
		Machine:        r.Machine,
		HostIP:         r.HostIP,
		User:           r.User,
		OutputFolder:   r.OutputFolder,
		TotalFiles:     r.TotalFiles,
		TotalSizeGB:    r.TotalSizeGB,
		OffsetCoordSys: r.OffsetCoordSys,
		OffsetHDatum:   r.OffsetHDatum,
		OffsetVDatum:   r.OffsetVDatum,
		OffsetX:        r.OffsetX,
		OffsetY:        r.OffsetY,
		OffsetZ:        r.OffsetZ,
		PivotCenterX:   r.PivotCenterX,
		PivotCenterY:   r.PivotCenterY,
		PivotCenterZ:   r.PivotCenterZ,
		FlipYZ:         r.FlipYZ,
		Trim:           r.Trim,
		Collision:      r.Collision,
		VisualLOD:      r.VisualLOD,
		Success:        r.Success,
		Warnings:       r.Warnings,
		Errors:         r.Errors,
		LogPath:        r.LogPath,
		IngestedAt:     ingestedAt,
	}
}

func runDate(start, end string) string {
	if start == "" {
		return normalize.ExtractDate(end)
	}
	return normalize.ExtractDate(start)
}
