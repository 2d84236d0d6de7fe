package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/meshlog/internal/config"
	"github.com/Zuo-Peng/meshlog/internal/ledger"
	"github.com/Zuo-Peng/meshlog/internal/query"
	"github.com/Zuo-Peng/meshlog/internal/record"
	"github.com/Zuo-Peng/meshlog/internal/tui"
)

func listCmd() *cobra.Command {
	var opts query.Options
	var columns string

	cmd := &cobra.Command{
		Use:   "list [text]",
		Short: "Browse ledger runs, newest first",
		Long: `Opens a TUI panel over the ledger when stdout is a terminal. Type to
filter by project, dataset, machine, export type, errors or log path.
When piped, matching rows are printed as tab-separated values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Text = args[0]
			}

			records, err := loadLedger(cfg)
			if err != nil {
				return err
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(records, opts)
			}
			return printTSV(records, opts, columns)
		},
	}

	cmd.Flags().StringVar(&opts.Tool, "tool", "", "Filter by tool (photomesh/realitymesh)")
	cmd.Flags().StringVar(&opts.Success, "success", "", "Filter by outcome (true/false)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Filter runs dated on or after (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Max results (0 = no limit)")
	cmd.Flags().StringVar(&columns, "columns", "Tool,RunDate,ProjectName,Success,LogPath", "Comma separated columns for piped output")

	return cmd
}

// loadLedger reads every record of the configured ledger.
func loadLedger(cfg *config.Config) ([]record.Unified, error) {
	store, err := ledger.Open(cfg.LedgerBackend, cfg.OutputsDir)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	records, err := query.Load(store)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return records, nil
}

func printTSV(records []record.Unified, opts query.Options, columns string) error {
	var idx []int
	var names []string
	for _, c := range strings.Split(columns, ",") {
		c = strings.TrimSpace(c)
		i := record.ColumnIndex(c)
		if i < 0 {
			return fmt.Errorf("unknown column %q", c)
		}
		idx = append(idx, i)
		names = append(names, c)
	}

	fmt.Println(strings.Join(names, "\t"))
	for _, r := range query.Filter(records, opts) {
		vals := r.Values()
		cells := make([]string, len(idx))
		for j, i := range idx {
			cells[j] = vals[i]
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
	return nil
}
