package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "texgen.toml")
	w := NewWatcher([]string{cfg}, time.Millisecond, func() {})

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to config", fsnotify.Event{Name: cfg, Op: fsnotify.Write}, true},
		{"create config", fsnotify.Event{Name: cfg, Op: fsnotify.Create}, true},
		{"rename config", fsnotify.Event{Name: cfg, Op: fsnotify.Rename}, true},
		{"chmod config", fsnotify.Event{Name: cfg, Op: fsnotify.Chmod}, false},
		{"write to sibling", fsnotify.Event{Name: filepath.Join(dir, "other.toml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_DebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "texgen.toml")
	if err := os.WriteFile(cfg, []byte("namespace = \"wasteland\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w := NewWatcher([]string{cfg}, 50*time.Millisecond, func() {
		calls.Add(1)
		fired <- struct{}{}
	})

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start() }()
	defer func() {
		w.Stop()
		if err := <-errCh; err != nil {
			t.Errorf("Start returned %v", err)
		}
	}()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)

	for i := range 3 {
		data := []byte("namespace = \"wasteland\"\n# edit " + string(rune('a'+i)) + "\n")
		if err := os.WriteFile(cfg, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not called")
	}

	// Let any stray timer fire before counting.
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("onChange called %d times, want 1", n)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "texgen.toml")}, time.Millisecond, func() {})
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start() }()
	w.Stop()
	w.Stop()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
