package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/meshlog/internal/logging"
	"github.com/Zuo-Peng/meshlog/internal/pipeline"
)

func ingestCmd() *cobra.Command {
	var photomesh, realitymesh []string
	var mode, unknown, out, reportPath, pattern, backend string
	var dropBlank bool

	cmd := &cobra.Command{
		Use:   "ingest [paths...]",
		Short: "Classify logs, append new runs to the ledger and rebuild the workbook",
		Long: `Paths may be files or directories. Directories are walked for files
matching --pattern and every file is classified by content. Logs passed
with --photomesh or --realitymesh skip classification.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			flags := cmd.Flags()
			if flags.Changed("mode") {
				cfg.Mode = mode
			}
			if flags.Changed("unknown") {
				cfg.UnknownPolicy = unknown
			}
			if flags.Changed("out") {
				cfg.OutputsDir = out
			}
			if flags.Changed("pattern") {
				cfg.Pattern = pattern
			}
			if flags.Changed("backend") {
				cfg.LedgerBackend = backend
			}
			if flags.Changed("drop-blank") {
				cfg.DropBlank = dropBlank
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := logging.WithContext(cmd.Context(), log)
			stats, err := pipeline.Run(ctx, pipeline.Options{
				Paths:         args,
				PhotoMesh:     photomesh,
				RealityMesh:   realitymesh,
				Pattern:       cfg.Pattern,
				Mode:          cfg.Mode,
				UnknownPolicy: cfg.UnknownPolicy,
				DropBlank:     cfg.DropBlank,
				OutputsDir:    cfg.OutputsDir,
				LedgerBackend: cfg.LedgerBackend,
				ReportPath:    reportPath,
			})
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			if stats.WorkbookPath != "" {
				fmt.Fprintf(os.Stderr, "  Ledger:   %s (%d rows)\n", stats.LedgerPath, stats.LedgerRows)
				fmt.Fprintf(os.Stderr, "  Workbook: %s\n", stats.WorkbookPath)
			}
			if stats.ReportPath != "" {
				fmt.Fprintf(os.Stderr, "  Report:   %s\n", stats.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&photomesh, "photomesh", nil, "PhotoMesh log (repeatable, skips classification)")
	cmd.Flags().StringSliceVar(&realitymesh, "realitymesh", nil, "RealityMesh log (repeatable, skips classification)")
	cmd.Flags().StringVar(&mode, "mode", "", "Output mode: master, report or both")
	cmd.Flags().StringVar(&unknown, "unknown", "", "Unknown log policy: skip, photomesh, realitymesh or both")
	cmd.Flags().StringVar(&out, "out", "", "Outputs directory")
	cmd.Flags().StringVar(&reportPath, "report", "", "Per-run report path (default <out>/Report.xlsx)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "File name pattern for directory inputs")
	cmd.Flags().StringVar(&backend, "backend", "", "Ledger backend: tsv or sqlite")
	cmd.Flags().BoolVar(&dropBlank, "drop-blank", false, "Drop records with no extracted fields")

	return cmd
}
