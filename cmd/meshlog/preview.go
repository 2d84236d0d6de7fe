package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/meshlog/internal/query"
	"github.com/Zuo-Peng/meshlog/internal/render"
)

func previewCmd() *cobra.Command {
	var width int
	var showEmpty bool

	cmd := &cobra.Command{
		Use:   "preview <logPath|project>",
		Short: "Show every ledger field of one run",
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

			fmt.Print(render.RenderRecord(rec, render.Options{
				Width:     width,
				Color:     term.IsTerminal(int(os.Stdout.Fd())),
				ShowEmpty: showEmpty,
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap values at this width (0 = no wrap)")
	cmd.Flags().BoolVar(&showEmpty, "all", false, "Also show empty fields")

	return cmd
}
