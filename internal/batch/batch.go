// Package batch runs conversions from request files dropped into a
// directory. New files are picked up via fsnotify, with a polling
// fallback for filesystems that do not support change notification.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/fxforge/internal/convert"
)

// debounceDefault is the debounce interval for file events.
const debounceDefault = 200 * time.Millisecond

// pollDefault is the scan interval when fsnotify is unavailable.
const pollDefault = 5 * time.Second

// RunFunc executes one validated conversion request.
// Injected by the CLI layer to break the import cycle with its wiring.
type RunFunc func(ctx context.Context, req convert.Request) (convert.Result, error)

// Config holds batch watcher configuration.
type Config struct {
	Dir      string  // drop directory with request files
	Workers  int     // backlog concurrency, default 2
	PollMode bool    // fall back to polling if fsnotify unavailable
	RunFn    RunFunc // conversion pipeline
}

// Watcher processes conversion request files from a drop directory.
type Watcher struct {
	cfg       Config
	doneDir   string
	failedDir string

	mu       sync.Mutex
	inFlight map[string]bool
}

// New creates a watcher with validated configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("drop directory is required")
	}
	if cfg.RunFn == nil {
		return nil, fmt.Errorf("run function is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}

	return &Watcher{
		cfg:       cfg,
		doneDir:   filepath.Join(cfg.Dir, "done"),
		failedDir: filepath.Join(cfg.Dir, "failed"),
		inFlight:  make(map[string]bool),
	}, nil
}

// Run starts the watcher. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for _, dir := range []string{w.cfg.Dir, w.doneDir, w.failedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directories: %w", err)
		}
	}

	slog.Info("batch starting", "dir", w.cfg.Dir, "workers", w.cfg.Workers)

	// Process any requests already waiting in the drop directory.
	if err := w.processBacklog(ctx); err != nil {
		return fmt.Errorf("process backlog: %w", err)
	}

	if w.cfg.PollMode {
		return w.runPollWatcher(ctx)
	}
	return w.runFSWatcher(ctx)
}

// processBacklog runs existing request files through a bounded worker group.
func (w *Watcher) processBacklog(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Workers)

	for _, e := range entries {
		if e.IsDir() || !isRequestFile(e.Name()) {
			continue
		}
		path := filepath.Join(w.cfg.Dir, e.Name())
		g.Go(func() error {
			w.process(ctx, path)
			return nil
		})
	}
	return g.Wait()
}

// runFSWatcher watches the drop directory using fsnotify.
func (w *Watcher) runFSWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	slog.Info("watching for request files", "mode", "fsnotify", "dir", w.cfg.Dir)

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
			slog.Info("batch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isRequestFile(filepath.Base(event.Name)) {
				continue
			}

			path := event.Name
			mu.Lock()
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(debounceDefault, func() {
				w.process(ctx, path)
				mu.Lock()
				delete(pending, path)
				mu.Unlock()
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// runPollWatcher watches the drop directory using polling.
func (w *Watcher) runPollWatcher(ctx context.Context) error {
	slog.Info("watching for request files", "mode", "poll", "dir", w.cfg.Dir, "interval", pollDefault)

	ticker := time.NewTicker(pollDefault)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("batch stopped")
			return nil
		case <-ticker.C:
			entries, err := os.ReadDir(w.cfg.Dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() || !isRequestFile(e.Name()) {
					continue
				}
				w.process(ctx, filepath.Join(w.cfg.Dir, e.Name()))
			}
		}
	}
}

// isRequestFile returns true for YAML request files (not temp files).
func isRequestFile(name string) bool {
	if strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// claim marks a path in-flight; returns false if another goroutine owns it.
func (w *Watcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[path] {
		return false
	}
	w.inFlight[path] = true
	return true
}

func (w *Watcher) release(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}
