package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Calc.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Add\n"), 0o644))

	builds := make(chan []string, 10)
	sw, err := NewSpecWatcher([]string{dir}, []string{"md"}, 100*time.Millisecond, func(ctx context.Context, changed []string) error {
		builds <- changed
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Run(ctx) }()

	select {
	case changed := <-builds:
		assert.Empty(t, changed, "initial build has no changed documents")
	case <-time.After(5 * time.Second):
		t.Fatal("initial build did not run")
	}

	// a burst of writes, plus a file that is not a spec document
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(doc, []byte("# Add\n| a || b |\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case changed := <-builds:
		assert.Equal(t, []string{doc}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a rebuild")
	}

	select {
	case changed := <-builds:
		t.Fatalf("burst triggered a second rebuild: %v", changed)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRelevant(t *testing.T) {
	sw := &SpecWatcher{extensions: map[string]bool{".md": true, ".yaml": true}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write markdown", fsnotify.Event{Name: "specs/Calc.md", Op: fsnotify.Write}, true},
		{"uppercase extension", fsnotify.Event{Name: "specs/Calc.MD", Op: fsnotify.Create}, true},
		{"removed yaml", fsnotify.Event{Name: "specs/Calc.yaml", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "specs/Calc.md", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "specs/Calc.swift", Op: fsnotify.Write}, false},
		{"hidden temp file", fsnotify.Event{Name: "specs/.Calc.md.swp", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "specs/Calc.md~", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sw.relevant(tt.event))
		})
	}
}

func TestNewSpecWatcherMissingPath(t *testing.T) {
	_, err := NewSpecWatcher([]string{filepath.Join(t.TempDir(), "nope")}, nil, DefaultDebounce, nil)
	assert.Error(t, err)
}
