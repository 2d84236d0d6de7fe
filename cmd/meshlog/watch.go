package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/meshlog/internal/logging"
	"github.com/Zuo-Peng/meshlog/internal/pipeline"
	"github.com/Zuo-Peng/meshlog/internal/watch"
)

func watchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Ingest logs as they land in a drop folder",
		Long: `Watches dir for new or modified files matching the configured pattern.
A file is ingested once it has not changed for the debounce interval.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithContext(ctx, log)

			ingest := func(ctx context.Context, path string) error {
				stats, err := pipeline.Run(ctx, pipeline.Options{
					Paths:         []string{path},
					Pattern:       cfg.Pattern,
					Mode:          cfg.Mode,
					UnknownPolicy: cfg.UnknownPolicy,
					DropBlank:     cfg.DropBlank,
					OutputsDir:    cfg.OutputsDir,
					LedgerBackend: cfg.LedgerBackend,
				})
				if err != nil {
					return err
				}
				log.Info("ingested", zap.String("path", path), zap.Stringer("stats", stats))
				return nil
			}

			w := watch.New(args[0], cfg.Pattern, debounce, ingest, log)
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a file is ingested")

	return cmd
}
