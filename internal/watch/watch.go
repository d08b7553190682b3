// Package watch re-runs the synchronization pipeline whenever
// players.yml changes. It watches the file's parent directory so
// editors that replace the file via rename are still observed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"playersync/internal/syncer"
)

// Watcher drives debounced sync runs from filesystem events. Runs are
// serialized: events arriving while a run executes queue at most one
// follow-up run.
type Watcher struct {
	runner   *syncer.Runner
	path     string
	debounce time.Duration
	log      *zap.Logger
	fsw      *fsnotify.Watcher
}

// New creates a Watcher over the players file. Debounce is 500ms to
// absorb editors that save in multiple writes.
func New(runner *syncer.Runner, playersPath string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		runner:   runner,
		path:     filepath.Clean(playersPath),
		debounce: 500 * time.Millisecond,
		log:      log,
		fsw:      fsw,
	}, nil
}

// Run blocks until ctx is cancelled, re-syncing on each (debounced)
// change to the players file. Sync errors are logged and watching
// continues; only watcher setup failures are fatal.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Info("watching players file", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			w.log.Debug("players file changed", zap.String("op", ev.Op.String()))
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if err := w.runner.Run(); err != nil {
				w.log.Error("sync failed", zap.Error(err))
			}
		}
	}
}
