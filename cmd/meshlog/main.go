package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/meshlog/internal/config"
	"github.com/Zuo-Peng/meshlog/internal/logging"
)

var version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "meshlog",
		Short:   "Ingest PhotoMesh and RealityMesh logs into a deduplicated run ledger",
		Version: version,
		Long: `meshlog classifies PhotoMesh and RealityMesh processing logs, extracts
one record per run and appends new runs to a ledger keyed by log path.
The All_Exports workbook is rebuilt from the ledger after every ingestion.

Only one meshlog process may write to an outputs directory at a time.
Concurrent ingest or watch runs against the same ledger are not supported.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $MESHLOG_CONFIG or ~/.config/meshlog/config.toml)")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(rebuildCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// setup loads the config and builds the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}
