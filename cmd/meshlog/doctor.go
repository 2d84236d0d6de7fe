package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/meshlog/internal/config"
	"github.com/Zuo-Peng/meshlog/internal/ledger"
	"github.com/Zuo-Peng/meshlog/internal/pipeline"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, ledger and workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return err
				}
				path = p
			}

			fmt.Println("=== Config ===")
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("  Path: %s (NOT FOUND, using defaults)\n", path)
			} else {
				fmt.Printf("  Path: %s (OK)\n", path)
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			fmt.Printf("  Mode: %s  Unknown: %s  Pattern: %s\n", cfg.Mode, cfg.UnknownPolicy, cfg.Pattern)
			checkDir("Outputs", cfg.OutputsDir)

			fmt.Println("\n=== Ledger ===")
			store, err := ledger.Open(cfg.LedgerBackend, cfg.OutputsDir)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			fmt.Printf("  Backend: %s\n", cfg.LedgerBackend)
			fmt.Printf("  Path:    %s\n", store.Path())
			if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
				fmt.Println("  Status:  NOT FOUND (run 'meshlog ingest' first)")
			} else {
				keys, err := store.Keys()
				switch {
				case errors.Is(err, ledger.ErrCorrupt):
					fmt.Printf("  Status:  CORRUPT (%v)\n", err)
					fmt.Println("           the next ingest cannot deduplicate against it")
				case err != nil:
					fmt.Printf("  Status:  ERROR (%v)\n", err)
				default:
					_, rows, err := store.Rows()
					if err != nil {
						fmt.Printf("  Status:  ERROR (%v)\n", err)
					} else {
						fmt.Println("  Status:  OK")
						fmt.Printf("  Rows:    %d (%d unique log paths)\n", len(rows), len(keys))
					}
				}
			}

			fmt.Println("\n=== Workbook ===")
			wb := filepath.Join(cfg.OutputsDir, pipeline.WorkbookFile)
			if info, err := os.Stat(wb); err != nil {
				fmt.Printf("  %s (NOT FOUND, run 'meshlog rebuild')\n", wb)
			} else {
				fmt.Printf("  %s (%.1f KB, %s)\n", wb, float64(info.Size())/1024, info.ModTime().Format("2006-01-02 15:04"))
			}

			fmt.Println("\n=== Concurrency ===")
			fmt.Println("  One writer per outputs directory. Do not run ingest or watch")
			fmt.Println("  concurrently against the same ledger.")
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
