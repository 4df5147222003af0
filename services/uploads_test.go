package services

import (
	"os"
	"strings"
	"testing"
	"time"

	"agro-advisory-api/config"
	"agro-advisory-api/logger"
)

func newTestStore(t *testing.T, maxBytes int64, retentionHours int) *ImageStore {
	t.Helper()
	store, err := NewImageStore(config.UploadConfig{
		Dir:            t.TempDir(),
		MaxBytes:       maxBytes,
		RetentionHours: retentionHours,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewImageStore failed: %v", err)
	}
	return store
}

func TestAllowed(t *testing.T) {
	store := newTestStore(t, 1024, 1)

	for _, name := range []string{"leaf.png", "leaf.JPG", "a.jpeg", "b.gif", "c.bmp"} {
		if !store.Allowed(name) {
			t.Errorf("Allowed(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"notes.txt", "run.exe", "leaf", "photo.png.sh"} {
		if store.Allowed(name) {
			t.Errorf("Allowed(%q) = true, want false", name)
		}
	}
}

func TestSaveAndRead(t *testing.T) {
	store := newTestStore(t, 1024, 1)
	data := []byte("fake image bytes")

	path, err := store.Save(data, "leaf.PNG")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("stored path %q should keep a lowercased extension", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(data) {
		t.Error("stored bytes differ from input")
	}

	// Saving the same name twice must not collide.
	path2, err := store.Save(data, "leaf.PNG")
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if path2 == path {
		t.Error("two saves of the same name returned the same path")
	}
}

func TestSaveRejections(t *testing.T) {
	store := newTestStore(t, 8, 1)

	if _, err := store.Save([]byte("x"), "script.sh"); err == nil {
		t.Error("Save accepted a disallowed extension")
	}
	if _, err := store.Save([]byte("123456789"), "big.png"); err == nil {
		t.Error("Save accepted a payload over the size cap")
	}
}

func TestCleanupStale(t *testing.T) {
	store := newTestStore(t, 1024, 1)

	stalePath, err := store.Save([]byte("old"), "old.png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	freshPath, err := store.Save([]byte("new"), "new.png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Age one file past the retention window.
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stalePath, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if removed := store.CleanupStale(); removed != 1 {
		t.Errorf("CleanupStale removed %d files, want 1", removed)
	}
	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Error("stale file still present")
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Errorf("fresh file should survive cleanup: %v", err)
	}
}
