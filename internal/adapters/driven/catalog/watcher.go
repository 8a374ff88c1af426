package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skintelect/skintelect/internal/logger"
)

// DefaultDebounce batches rapid saves into a single reload.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-seeds the catalog whenever an external dataset file changes.
type Watcher struct {
	path     string
	seeder   *Seeder
	debounce time.Duration
	onReload func(Counts, error)
}

// NewWatcher creates a watcher for the dataset at path.
func NewWatcher(path string, seeder *Seeder) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		seeder:   seeder,
		debounce: DefaultDebounce,
	}
}

// OnReload registers fn to be called after every reload attempt.
func (w *Watcher) OnReload(fn func(Counts, error)) {
	w.onReload = fn
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	logger.Info("watching dataset %s", w.path)

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("dataset event: %s", event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			reload = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("dataset watcher: %v", err)

		case <-reload:
			reload = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	counts, err := w.seed(ctx)
	if err != nil {
		logger.Error("reloading dataset %s: %v", w.path, err)
	} else {
		logger.Info("reloaded dataset: %d ingredients, %d products", counts.Ingredients, counts.Products)
	}
	if w.onReload != nil {
		w.onReload(counts, err)
	}
}

func (w *Watcher) seed(ctx context.Context) (Counts, error) {
	ds, err := LoadFile(w.path)
	if err != nil {
		return Counts{}, err
	}
	return w.seeder.Seed(ctx, ds)
}
