package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 4)
	w, err := New(100*time.Millisecond, []string{"node_modules"}, []string{"*.log"}, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "main.go")
	os.WriteFile(testFile, []byte("package main"), 0o644)

	select {
	case paths := <-changed:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in changed paths %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	// Excluded file patterns must not schedule a callback.
	os.WriteFile(filepath.Join(tmpDir, "debug.log"), []byte("x"), 0o644)
	select {
	case paths := <-changed:
		for _, p := range paths {
			if filepath.Base(p) == "debug.log" {
				t.Error("excluded file triggered callback")
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// A directory created after Watch is picked up recursively.
	subdir := filepath.Join(tmpDir, "pkg")
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(subdir, "nested.go")
	if err := os.WriteFile(nested, []byte("package pkg"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changed:
			for _, p := range paths {
				if p == nested {
					return
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for event from new directory")
		}
	}
}

func TestWatcherRejectsNilCallback(t *testing.T) {
	if _, err := New(time.Millisecond, nil, nil, nil); err == nil {
		t.Error("nil callback accepted")
	}
}

func TestWatcherRejectsBadPattern(t *testing.T) {
	if _, err := New(time.Millisecond, []string{"[bad"}, nil, func([]string) {}); err == nil {
		t.Error("invalid exclude pattern accepted")
	}
}
