package record

import "github.com/Zuo-Peng/meshlog/internal/parse"

// Summary is the per-run rollup shown on the Summary sheet. It is never
// stored in the ledger.
type Summary struct {
	ProjectName string
	RunDate     string
	Tool        string
	ExportType  string
	Duration    string
	TotalSizeGB string
	PhotosUsed  string
	FusersUsed  string
	Machine     string
	Success     string
	Errors      string
}

// Values returns the summary cells in sheet order.
func (s Summary) Values() []string {
	return []string{
		s.ProjectName, s.RunDate, s.Tool, s.ExportType, s.Duration, s.TotalSizeGB,
		s.PhotosUsed, s.FusersUsed, s.Machine, s.Success, s.Errors,
	}
}

func SummarizePhotoMesh(r parse.PhotoMeshRecord) Summary {
	return Summary{
		ProjectName: r.ProjectName,
		RunDate:     runDate(r.StartTime, r.EndTime),
		Tool:        parse.PhotoMesh.String(),
		ExportType:  r.ExportType,
		Duration:    r.Duration,
		TotalSizeGB: r.TotalSizeGB,
		PhotosUsed:  r.PhotosUsed,
		FusersUsed:  r.FusersUsed,
		Machine:     r.Machine,
		Success:     r.Success,
		Errors:      r.Errors,
	}
}

func SummarizeRealityMesh(r parse.RealityMeshRecord) Summary {
	project := r.ProjectName
	if project == "" {
		project = r.DatasetName
	}
	return Summary{
		ProjectName: project,
		RunDate:     runDate(r.StartTime, r.EndTime),
		Tool:        parse.RealityMesh.String(),
		ExportType:  r.ExportType,
		Duration:    r.Duration,
		TotalSizeGB: r.TotalSizeGB,
		Machine:     r.Machine,
		Success:     r.Success,
		Errors:      r.Errors,
	}
}

// Summaries summarizes PhotoMesh records first, then RealityMesh ones.
func Summaries(pm []parse.PhotoMeshRecord, rm []parse.RealityMeshRecord) []Summary {
	out := make([]Summary, 0, len(pm)+len(rm))
	for _, r := range pm {
		out = append(out, SummarizePhotoMesh(r))
	}
	for _, r := range rm {
		out = append(out, SummarizeRealityMesh(r))
	}
	return out
}
