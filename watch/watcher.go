// Package watch regenerates tests when specification documents change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc regenerates output. changed lists the documents that triggered
// it, sorted; it is empty for the initial build.
type RebuildFunc func(ctx context.Context, changed []string) error

// SpecWatcher watches specification documents and triggers rebuilds
type SpecWatcher struct {
	watcher        *fsnotify.Watcher
	rebuild        RebuildFunc
	extensions     map[string]bool
	debouncePeriod time.Duration
	logger         *zap.SugaredLogger

	mu            sync.Mutex
	debounceTimer *time.Timer
	pending       map[string]bool

	buildMu sync.Mutex // one rebuild at a time
	ctx     context.Context
}

// NewSpecWatcher creates a watcher over paths. Directories are watched
// recursively; new subdirectories are picked up as they appear. Only files
// whose extension is listed trigger rebuilds.
func NewSpecWatcher(paths, extensions []string, debounce time.Duration, rebuild RebuildFunc) (*SpecWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	sw := &SpecWatcher{
		watcher:        watcher,
		rebuild:        rebuild,
		extensions:     make(map[string]bool),
		debouncePeriod: debounce,
		logger:         logger.ComponentLogger("watch"),
		pending:        make(map[string]bool),
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		sw.extensions[strings.ToLower(ext)] = true
	}

	for _, p := range paths {
		if err := sw.add(p); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return sw, nil
}

// add watches a file's directory, or every directory below a directory
func (sw *SpecWatcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	if !info.IsDir() {
		// editors replace files on save, so watch the parent
		return sw.watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := sw.watcher.Add(p); err != nil {
			return errors.Wrapf(err, "failed to watch %s", p)
		}
		return nil
	})
}

// Run performs an initial build, then rebuilds on changes until ctx is done.
func (sw *SpecWatcher) Run(ctx context.Context) error {
	sw.ctx = ctx
	defer sw.Stop()

	sw.runRebuild(nil)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			sw.handle(event)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Warnw("Spec watcher error", logger.FieldError, err)
		}
	}
}

func (sw *SpecWatcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := sw.add(event.Name); err != nil {
				sw.logger.Warnw("Failed to watch new directory", logger.FieldPath, event.Name, logger.FieldError, err)
			}
			return
		}
	}

	if !sw.relevant(event) {
		return
	}

	sw.logger.Debugw("Spec watcher detected change",
		logger.FieldFile, event.Name,
		logger.FieldOperation, event.Op.String())
	sw.schedule(event.Name)
}

// relevant filters out chmod noise, editor temp files and unwatched extensions
func (sw *SpecWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return sw.extensions[strings.ToLower(filepath.Ext(base))]
}

// schedule debounces rapid file changes and triggers a rebuild
func (sw *SpecWatcher) schedule(path string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.pending[path] = true

	// Cancel existing timer if any
	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}
	sw.debounceTimer = time.AfterFunc(sw.debouncePeriod, sw.flush)
}

func (sw *SpecWatcher) flush() {
	sw.mu.Lock()
	changed := make([]string, 0, len(sw.pending))
	for p := range sw.pending {
		changed = append(changed, p)
	}
	sw.pending = make(map[string]bool)
	sw.mu.Unlock()

	sort.Strings(changed)
	sw.runRebuild(changed)
}

func (sw *SpecWatcher) runRebuild(changed []string) {
	sw.buildMu.Lock()
	defer sw.buildMu.Unlock()

	ctx := sw.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := sw.rebuild(ctx, changed); err != nil {
		sw.logger.Errorw("Regeneration failed",
			logger.FieldCount, len(changed),
			logger.FieldError, err)
		return
	}
	sw.logger.Infow("Regenerated",
		logger.FieldCount, len(changed),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
}

// Stop stops watching. A pending debounced rebuild is dropped.
func (sw *SpecWatcher) Stop() error {
	sw.mu.Lock()
	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}
	sw.mu.Unlock()
	return sw.watcher.Close()
}
