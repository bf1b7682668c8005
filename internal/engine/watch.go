package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of file events into one reload.
const DefaultDebounce = 250 * time.Millisecond

// Watcher keeps one project's Program fresh: it watches the project tree
// and swaps in a new Snapshot after each debounced change burst. Readers
// always see a complete snapshot; during a reload they briefly see the
// previous one, which is exactly the point-in-time semantics the status
// channel promises.
type Watcher struct {
	opts     LoadOptions
	debounce time.Duration
	logger   *slog.Logger
	load     func(context.Context, LoadOptions) (*Snapshot, error)

	mu      sync.Mutex
	current *Snapshot
	timer   *time.Timer
}

// NewWatcher builds a watcher; the initial program is nil until the first
// Refresh or watched change completes.
func NewWatcher(opts LoadOptions, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{opts: opts, debounce: debounce, logger: logger, load: Load}
}

// Program returns the current snapshot, or nil before the first load and
// after a torn-down project. Callers must treat nil as "no issues".
func (w *Watcher) Program() Program {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	return w.current
}

// Refresh runs one synchronous analysis pass and publishes its snapshot.
func (w *Watcher) Refresh(ctx context.Context) error {
	snap, err := w.load(ctx, w.opts)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.current = snap
	w.mu.Unlock()
	w.logger.Debug("analysis pass finished", "dir", w.opts.Dir, "total_ms", snap.LoadTimings().TotalMS)
	return nil
}

// Run watches the project tree until ctx is done. It performs an initial
// load before entering the event loop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Refresh(ctx); err != nil {
		// A project that fails to load still serves (empty) queries; keep
		// watching so a later fix brings it back.
		w.logger.Warn("initial analysis failed", "dir", w.opts.Dir, "error", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := addTree(fw, w.opts.Dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() && watchableDir(filepath.Base(ev.Name)) {
					_ = addTree(fw, ev.Name)
				}
			}
			if relevantChange(ev.Name) {
				w.schedule(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "dir", w.opts.Dir, "error", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if err := w.Refresh(ctx); err != nil {
			w.logger.Warn("reanalysis failed", "dir", w.opts.Dir, "error", err)
			return
		}
		w.logger.Debug("program refreshed", "dir", w.opts.Dir)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func relevantChange(name string) bool {
	base := filepath.Base(name)
	if base == "go.mod" || base == "go.sum" {
		return true
	}
	return strings.HasSuffix(base, ".go")
}

func watchableDir(base string) bool {
	if base == "vendor" || base == "testdata" {
		return false
	}
	return !strings.HasPrefix(base, ".") && !strings.HasPrefix(base, "_")
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && !watchableDir(d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
