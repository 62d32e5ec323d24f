package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedTime() time.Time {
	return time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
}

func TestGuideStoreOutputPath(t *testing.T) {
	store := NewGuideStore("/tmp/guides")
	got := store.OutputPath("microsoft", "vscode", fixedTime())
	want := filepath.Join("/tmp/guides", "onboarding-microsoft-vscode-2026-08-29.md")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestGuideStoreWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "guides")
	store := NewGuideStore(dir).(*fileGuideStore)
	store.now = fixedTime

	path, err := store.Write("acme", "widgets", "# Welcome\n")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := filepath.Join(dir, "onboarding-acme-widgets-2026-08-29.md")
	if path != want {
		t.Errorf("Write returned %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading guide: %v", err)
	}
	if string(data) != "# Welcome\n" {
		t.Errorf("guide content = %q", string(data))
	}
}

func TestGuideStoreWriteOverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	store := NewGuideStore(dir).(*fileGuideStore)
	store.now = fixedTime

	first, err := store.Write("acme", "widgets", "first version")
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	second, err := store.Write("acme", "widgets", "second version")
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if first != second {
		t.Errorf("same-day writes should share a path: %q vs %q", first, second)
	}

	data, _ := os.ReadFile(second)
	if string(data) != "second version" {
		t.Errorf("expected overwrite, got %q", string(data))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 guide file, got %d", len(entries))
	}
}

func TestGuideStoreWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "guides")
	store := NewGuideStore(dir)

	if _, err := store.Write("acme", "widgets", "content"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}
