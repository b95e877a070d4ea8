package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) (*FileWatcher, string) {
	t.Helper()
	root := t.TempDir()
	fw, err := NewFileWatcher(New(root))
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	t.Cleanup(func() { fw.w.Close() })
	return fw, root
}

func TestWatcherHandle(t *testing.T) {
	fw, root := newTestWatcher(t)
	path := filepath.Join(root, "a.sdsl")

	writeFile(t, path, "x = ;")
	change, ok := fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Create})
	if !ok || change.Info == nil || change.Info.OK() {
		t.Fatalf("create: %+v, %v", change, ok)
	}

	writeFile(t, path, "x = 1;")
	change, ok = fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	if !ok || change.Info == nil || !change.Info.OK() {
		t.Fatalf("write: %+v, %v", change, ok)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	change, ok = fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	if !ok || change.Path != path || change.Info != nil {
		t.Fatalf("remove: %+v, %v", change, ok)
	}
	if fw.codebase.GetFile(path) != nil {
		t.Error("file still known after remove")
	}

	if _, ok := fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove}); ok {
		t.Error("second remove reported a change")
	}
}

func TestWatcherIgnores(t *testing.T) {
	fw, root := newTestWatcher(t)

	notes := filepath.Join(root, "notes.txt")
	writeFile(t, notes, "x = ;")
	if _, ok := fw.handle(fsnotify.Event{Name: notes, Op: fsnotify.Write}); ok {
		t.Error("non-source file reported")
	}

	dir := filepath.Join(root, "sub.sdsl")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := fw.handle(fsnotify.Event{Name: dir, Op: fsnotify.Create}); ok {
		t.Error("directory reported as a change")
	}
	if fw.codebase.GetFile(dir) != nil {
		t.Error("directory parsed as a file")
	}
}

func TestWatcherRunStops(t *testing.T) {
	fw, _ := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, open := <-fw.Changes(); open {
		t.Error("Changes not closed")
	}
}
