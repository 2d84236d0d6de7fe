// Package pipeline runs one ingestion: classify, extract, unify, merge into
// the ledger, rebuild the ledger workbook and optionally write a per-run
// report. Files are handled strictly one after another.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/meshlog/internal/config"
	"github.com/Zuo-Peng/meshlog/internal/ledger"
	"github.com/Zuo-Peng/meshlog/internal/logging"
	"github.com/Zuo-Peng/meshlog/internal/parse"
	"github.com/Zuo-Peng/meshlog/internal/record"
	"github.com/Zuo-Peng/meshlog/internal/report"
	"github.com/Zuo-Peng/meshlog/internal/scan"
)

const (
	WorkbookFile = "All_Exports.xlsx"
	ReportFile   = "Report.xlsx"
)

// ErrNoInputs is returned when Run is given nothing to ingest.
var ErrNoInputs = errors.New("no input logs")

type Options struct {
	// Paths are classified before extraction. Directories are walked for
	// files matching Pattern.
	Paths []string
	// PhotoMesh and RealityMesh paths skip classification.
	PhotoMesh   []string
	RealityMesh []string
	Pattern     string

	Mode          string // config.ModeMaster, ModeReport or ModeBoth
	UnknownPolicy string // config.Unknown*
	DropBlank     bool

	OutputsDir    string
	LedgerBackend string
	ReportPath    string // defaults to OutputsDir/Report.xlsx

	Writer report.Writer    // defaults to an ExcelWriter
	Now    func() time.Time // defaults to time.Now
}

type Stats struct {
	RunID       string
	Classified  int
	PhotoMesh   int
	RealityMesh int
	Unknown     int
	Skipped     int
	Dropped     int
	Appended    int
	Duplicates  int
	LedgerRows  int

	LedgerPath   string
	WorkbookPath string
	ReportPath   string
}

func (s Stats) String() string {
	return fmt.Sprintf("classified=%d photomesh=%d realitymesh=%d unknown=%d skipped=%d dropped=%d appended=%d duplicates=%d",
		s.Classified, s.PhotoMesh, s.RealityMesh, s.Unknown, s.Skipped, s.Dropped, s.Appended, s.Duplicates)
}

// Run ingests the logs named by opts. Cancelling ctx stops the run between
// files, before the ledger is written. Only a ledger or workbook write
// failure is returned as an error once extraction is done.
func Run(ctx context.Context, opts Options) (Stats, error) {
	opts = withDefaults(opts)
	stats := Stats{RunID: uuid.NewString()}
	log := logging.FromContext(ctx).Named("pipeline").With(zap.String("run", stats.RunID))

	classified, err := scan.Expand(opts.Paths, opts.Pattern)
	if err != nil {
		return stats, err
	}
	pmPaths, err := scan.Expand(opts.PhotoMesh, opts.Pattern)
	if err != nil {
		return stats, err
	}
	rmPaths, err := scan.Expand(opts.RealityMesh, opts.Pattern)
	if err != nil {
		return stats, err
	}
	if len(classified)+len(pmPaths)+len(rmPaths) == 0 {
		return stats, ErrNoInputs
	}

	for _, p := range classified {
		kind := parse.ClassifyFile(p)
		stats.Classified++
		log.Debug("classified", zap.String("path", p), zap.Stringer("kind", kind))

		switch kind {
		case parse.PhotoMesh:
			pmPaths = append(pmPaths, p)
		case parse.RealityMesh:
			rmPaths = append(rmPaths, p)
		default:
			stats.Unknown++
			log.Warn("unrecognized log", zap.String("path", p), zap.String("policy", opts.UnknownPolicy))
			switch opts.UnknownPolicy {
			case config.UnknownPhotoMesh:
				pmPaths = append(pmPaths, p)
			case config.UnknownRealityMesh:
				rmPaths = append(rmPaths, p)
			case config.UnknownBoth:
				pmPaths = append(pmPaths, p)
				rmPaths = append(rmPaths, p)
			default:
				stats.Skipped++
			}
		}
	}

	var pm []parse.PhotoMeshRecord
	for _, p := range pmPaths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rec := parse.ParsePhotoMesh(p)
		if opts.DropBlank && rec.IsBlank() {
			stats.Dropped++
			log.Warn("dropping blank record", zap.String("path", p), zap.String("tool", "PhotoMesh"))
			continue
		}
		pm = append(pm, rec)
	}

	var rm []parse.RealityMeshRecord
	for _, p := range rmPaths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rec := parse.ParseRealityMesh(p)
		if opts.DropBlank && rec.IsBlank() {
			stats.Dropped++
			log.Warn("dropping blank record", zap.String("path", p), zap.String("tool", "RealityMesh"))
			continue
		}
		rm = append(rm, rec)
	}
	stats.PhotoMesh, stats.RealityMesh = len(pm), len(rm)

	if opts.Mode == config.ModeMaster || opts.Mode == config.ModeBoth {
		if err := updateLedger(log, opts, pm, rm, &stats); err != nil {
			return stats, err
		}
	}

	if opts.Mode == config.ModeReport || opts.Mode == config.ModeBoth {
		tables := report.RunReport(pm, rm, record.Summaries(pm, rm))
		if err := opts.Writer.Write(opts.ReportPath, tables); err != nil {
			return stats, fmt.Errorf("write report %s: %w", opts.ReportPath, err)
		}
		stats.ReportPath = opts.ReportPath
		log.Info("wrote report", zap.String("path", opts.ReportPath))
	}

	log.Info("run complete", zap.Stringer("stats", stats))
	return stats, nil
}

func updateLedger(log *zap.Logger, opts Options, pm []parse.PhotoMeshRecord, rm []parse.RealityMeshRecord, stats *Stats) error {
	ledgerLog := log.Named("ledger")

	store, err := ledger.Open(opts.LedgerBackend, opts.OutputsDir)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()
	stats.LedgerPath = store.Path()

	res, err := ledger.Merge(store, record.Unify(pm, rm, opts.Now()))
	if err != nil {
		return err
	}
	if res.Warning != nil {
		ledgerLog.Warn("ledger unreadable for dedup, treating as empty", zap.Error(res.Warning))
	}
	stats.Appended, stats.Duplicates = res.Appended, res.Duplicates
	ledgerLog.Info("merged", zap.String("path", store.Path()),
		zap.Int("appended", res.Appended), zap.Int("duplicates", res.Duplicates))

	workbook := filepath.Join(opts.OutputsDir, WorkbookFile)
	tbl, err := report.Rebuild(store, workbook, opts.Writer)
	if err != nil {
		return fmt.Errorf("rebuild workbook: %w", err)
	}
	stats.LedgerRows = len(tbl.Rows)
	stats.WorkbookPath = workbook
	ledgerLog.Info("rebuilt workbook", zap.String("path", workbook), zap.Int("rows", len(tbl.Rows)))
	return nil
}

// RebuildOnly regenerates the ledger workbook without ingesting anything.
func RebuildOnly(ctx context.Context, backend, outputsDir string, w report.Writer) (string, int, error) {
	if w == nil {
		w = report.NewExcelWriter()
	}
	store, err := ledger.Open(backend, outputsDir)
	if err != nil {
		return "", 0, fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	workbook := filepath.Join(outputsDir, WorkbookFile)
	tbl, err := report.Rebuild(store, workbook, w)
	if err != nil {
		return "", 0, fmt.Errorf("rebuild workbook: %w", err)
	}
	logging.FromContext(ctx).Named("ledger").Info("rebuilt workbook",
		zap.String("path", workbook), zap.Int("rows", len(tbl.Rows)))
	return workbook, len(tbl.Rows), nil
}

func withDefaults(opts Options) Options {
	if opts.Mode == "" {
		opts.Mode = config.ModeMaster
	}
	if opts.UnknownPolicy == "" {
		opts.UnknownPolicy = config.UnknownSkip
	}
	if opts.ReportPath == "" {
		opts.ReportPath = filepath.Join(opts.OutputsDir, ReportFile)
	}
	if opts.Writer == nil {
		opts.Writer = report.NewExcelWriter()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}
