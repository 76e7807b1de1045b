package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalImageStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "images")
	store, err := NewLocalImageStore(dir, "/uploads/images/")
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}

	path, err := store.Save(context.Background(), "cover.png", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "/uploads/images/cover.png" {
		t.Fatalf("unexpected public path %q", path)
	}
	got, err := os.ReadFile(filepath.Join(dir, "cover.png"))
	if err != nil || string(got) != "data" {
		t.Fatalf("file not written: %q %v", got, err)
	}

	if _, err := store.Save(context.Background(), "cover.png", strings.NewReader("again")); err == nil {
		t.Fatal("existing files must not be overwritten")
	}

	if err := store.Remove(context.Background(), "cover.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cover.png")); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := store.Remove(context.Background(), "cover.png"); err != nil {
		t.Fatalf("removing a missing file must succeed: %v", err)
	}
}

func TestLocalImageStore_RejectsPaths(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "/uploads/images")
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}

	for _, name := range []string{"", "../escape.png", "a/b.png", ".hidden"} {
		if _, err := store.Save(context.Background(), name, strings.NewReader("x")); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}
