package watch

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change observed for a path.
type Op uint8

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "write"
	}
}

// Change represents a detected file change.
type Change struct {
	Path string
	Op   Op
}

// Config configures the watcher.
type Config struct {
	// Paths are the files or directories to watch. Directories are watched
	// one level deep.
	Paths []string

	// Ignore patterns to skip (names, globs or path segments).
	Ignore []string

	// Debounce is the quiet period before a change is reported.
	Debounce time.Duration

	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher monitors files for changes.
type Watcher struct {
	config   Config
	logger   *slog.Logger
	onChange func(Change)

	// ready runs once every path is being watched.
	ready func()

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	pending map[string]Op
	timer   *time.Timer
}

// NewWatcher creates a new file watcher.
func NewWatcher(config Config) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		config:  config,
		logger:  logger.With("component", "watch"),
		pending: make(map[string]Op),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is cancelled or Stop is called. It returns an
// error if a path cannot be watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	}()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, p := range w.config.Paths {
		if err := w.add(fw, p); err != nil {
			return err
		}
	}
	if w.ready != nil {
		w.ready()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.logger.Debug("fsnotify event", "path", event.Name, "op", event.Op.String())
			w.handle(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// add watches p and, for a directory, its immediate subdirectories.
func (w *Watcher) add(fw *fsnotify.Watcher, p string) error {
	if err := fw.Add(p); err != nil {
		return err
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		sub := filepath.Join(p, e.Name())
		if e.IsDir() && !w.shouldIgnore(sub) {
			if err := fw.Add(sub); err != nil {
				w.logger.Warn("failed to watch subdirectory", "path", sub, "error", err)
			}
		}
	}
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// handle records an fsnotify event and restarts the debounce timer.
func (w *Watcher) handle(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}
	var op Op
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		op = OpRemove
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpWrite
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// A create followed by writes is still a create.
	if prev, ok := w.pending[event.Name]; !ok || op != OpWrite || prev != OpCreate {
		w.pending[event.Name] = op
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.config.Debounce, w.flush)
	} else {
		w.timer.Reset(w.config.Debounce)
	}
}

// flush reports pending changes in path order.
func (w *Watcher) flush() {
	w.mu.Lock()
	callback := w.onChange
	changes := make([]Change, 0, len(w.pending))
	for p, op := range w.pending {
		changes = append(changes, Change{Path: p, Op: op})
	}
	w.pending = make(map[string]Op)
	w.mu.Unlock()

	if callback == nil {
		return
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	for _, c := range changes {
		callback(c)
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/")
		if strings.ContainsAny(pattern, "*?[") {
			target := name
			if hasPathSep {
				target = normalized
			}
			if matched, _ := path.Match(pattern, target); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if pathMatchesSegments(normalized, pattern) {
				return true
			}
			continue
		}

		if pathHasSegment(normalized, pattern) {
			return true
		}
	}

	return false
}

func pathHasSegment(p, segment string) bool {
	for _, part := range splitPathSegments(p) {
		if part == segment {
			return true
		}
	}
	return false
}

func pathMatchesSegments(p, pattern string) bool {
	pathParts := splitPathSegments(p)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		match := true
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitPathSegments(p string) []string {
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}
