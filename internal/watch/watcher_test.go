package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func collect(w *Watcher) <-chan Change {
	ch := make(chan Change, 16)
	w.OnChange(func(c Change) { ch <- c })
	return ch
}

func next(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestShouldIgnore(t *testing.T) {
	w := NewWatcher(Config{Ignore: []string{".git", "*.swp", "build/out", "tmp/*.yaml"}})

	tests := []struct {
		path string
		want bool
	}{
		{"fixtures/page.yaml", false},
		{"fixtures/.git/HEAD", true},
		{".git", true},
		{"fixtures/page.yaml.swp", true},
		{"project/build/out/page.yaml", true},
		{"project/build/page.yaml", false},
		{"tmp/page.yaml", true},
		{"tmp/nested/page.yaml", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.shouldIgnore(tt.path), tt.path)
	}
}

func TestNewWatcherDefaults(t *testing.T) {
	w := NewWatcher(Config{})
	assert.Equal(t, 100*time.Millisecond, w.config.Debounce)
	assert.Equal(t, DefaultIgnore, w.config.Ignore)
	assert.False(t, w.IsRunning())
}

func TestHandleCoalescesBursts(t *testing.T) {
	w := NewWatcher(Config{Debounce: 20 * time.Millisecond, Logger: quiet()})
	ch := collect(w)

	w.handle(fsnotify.Event{Name: "b.yaml", Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: "a.yaml", Op: fsnotify.Create})
	w.handle(fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: "b.yaml", Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: "c.yaml", Op: fsnotify.Chmod})
	w.handle(fsnotify.Event{Name: "d.yaml.swp", Op: fsnotify.Write})

	assert.Equal(t, Change{Path: "a.yaml", Op: OpCreate}, next(t, ch))
	assert.Equal(t, Change{Path: "b.yaml", Op: OpWrite}, next(t, ch))

	select {
	case c := <-ch:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(60 * time.Millisecond):
	}

	w.handle(fsnotify.Event{Name: "a.yaml", Op: fsnotify.Rename})
	assert.Equal(t, Change{Path: "a.yaml", Op: OpRemove}, next(t, ch))
}

func TestWatchDirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(Config{Paths: []string{dir}, Debounce: 20 * time.Millisecond, Logger: quiet()})
	ch := collect(w)
	ready := make(chan struct{})
	w.ready = func() { close(ready) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("Start returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}
	assert.True(t, w.IsRunning())

	file := filepath.Join(dir, "page.yaml")
	require.NoError(t, os.WriteFile(file, []byte("body: []\n"), 0o644))

	c := next(t, ch)
	assert.Equal(t, file, c.Path)
	assert.Equal(t, OpCreate, c.Op)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	assert.False(t, w.IsRunning())
}

func TestStartMissingPath(t *testing.T) {
	w := NewWatcher(Config{Paths: []string{filepath.Join(t.TempDir(), "missing")}, Logger: quiet()})
	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "remove", OpRemove.String())
}
