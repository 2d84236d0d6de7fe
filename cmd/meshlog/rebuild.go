package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/meshlog/internal/logging"
	"github.com/Zuo-Peng/meshlog/internal/pipeline"
)

func rebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Regenerate the All_Exports workbook from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := logging.WithContext(cmd.Context(), log)
			path, rows, err := pipeline.RebuildOnly(ctx, cfg.LedgerBackend, cfg.OutputsDir, nil)
			if err != nil {
				return fmt.Errorf("rebuild: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. rows=%d workbook=%s\n", rows, path)
			return nil
		},
	}
}
