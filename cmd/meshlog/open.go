package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/meshlog/internal/open"
	"github.com/Zuo-Peng/meshlog/internal/query"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <logPath|project>",
		Short: "Open the source log in $EDITOR at the first error line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			records, err := loadLedger(cfg)
			if err != nil {
				return err
			}

			rec, ok := query.Find(records, args[0])
			if !ok {
				return fmt.Errorf("no ledger row for %q", args[0])
			}
			return open.OpenLog(rec)
		},
	}
}
