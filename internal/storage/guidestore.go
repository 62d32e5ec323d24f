// Package storage provides the file-backed persistence layer for onboard:
// generated guides on disk, one Markdown file per run.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GuideStoreManager persists generated onboarding guides.
type GuideStoreManager interface {
	// Write stores the guide content and returns the path it was written to.
	// A second run on the same day with the same parameters overwrites the
	// previous file.
	Write(owner, repo, content string) (string, error)

	// OutputPath returns the deterministic path a guide for the given
	// parameters would be written to on the given date.
	OutputPath(owner, repo string, date time.Time) string
}

// fileGuideStore implements GuideStoreManager on the local filesystem.
type fileGuideStore struct {
	outputDir string

	// now is injectable for deterministic paths in tests.
	now func() time.Time
}

// NewGuideStore creates a guide store rooted at outputDir. The directory is
// created on first write if it does not exist.
func NewGuideStore(outputDir string) GuideStoreManager {
	return &fileGuideStore{outputDir: outputDir, now: time.Now}
}

func (s *fileGuideStore) OutputPath(owner, repo string, date time.Time) string {
	name := fmt.Sprintf("onboarding-%s-%s-%s.md", owner, repo, date.Format("2006-01-02"))
	return filepath.Join(s.outputDir, name)
}

func (s *fileGuideStore) Write(owner, repo, content string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.outputDir, err)
	}

	path := s.OutputPath(owner, repo, s.now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing guide %s: %w", path, err)
	}
	return path, nil
}
