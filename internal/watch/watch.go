// Package watch ingests logs dropped into a directory.
package watch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/meshlog/internal/scan"
)

// DefaultDebounce is how long a file must stay quiet before it is ingested.
const DefaultDebounce = 2 * time.Second

// IngestFunc handles one settled file. It is always called from the
// watcher loop, so calls never overlap.
type IngestFunc func(ctx context.Context, path string) error

type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	ingest   IngestFunc
	log      *zap.Logger

	pending map[string]time.Time
	now     func() time.Time
}

func New(dir, pattern string, debounce time.Duration, ingest IngestFunc, log *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		pattern:  pattern,
		debounce: debounce,
		ingest:   ingest,
		log:      log.Named("watch"),
		pending:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Run watches until ctx is cancelled. Ingest errors are logged and the
// file is dropped from the queue.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching", zap.String("dir", w.dir), zap.String("pattern", w.pattern))

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopped", zap.Int("pending", len(w.pending)))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !scan.Matches(event.Name, w.pattern) {
		return
	}
	w.log.Debug("event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.pending[event.Name] = w.now()
}

// flush ingests, in path order, every pending file quiet for the debounce
// period.
func (w *Watcher) flush(ctx context.Context) {
	cutoff := w.now().Add(-w.debounce)
	var ready []string
	for p, last := range w.pending {
		if !last.After(cutoff) {
			ready = append(ready, p)
		}
	}
	sort.Strings(ready)

	for _, p := range ready {
		if ctx.Err() != nil {
			return
		}
		delete(w.pending, p)
		if err := w.ingest(ctx, p); err != nil {
			w.log.Error("ingest failed", zap.String("path", p), zap.Error(err))
		}
	}
}
