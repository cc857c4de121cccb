// Package snapshot runs the study-area map capture batch: one satellite and
// one styled roadmap image per neighborhood, written into a directory tree
// mirroring the study-area table.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ovitrap/aedes-study-service/internal/adapter/staticmap"
)

// Store addresses snapshot artifacts by path:
// <root>/<city>/<neighborhood>/<maptype>.png. Presence of the file is the
// idempotency marker — an existing artifact is never re-fetched, so an
// interrupted batch resumes where it stopped.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the artifact tree root.
func (s *Store) Root() string { return s.root }

// Path returns the artifact path for one capture.
func (s *Store) Path(city, neighborhood string, mapType staticmap.MapType) string {
	return filepath.Join(s.root, city, neighborhood, string(mapType)+".png")
}

// Exists reports whether an artifact is already on disk.
func (s *Store) Exists(city, neighborhood string, mapType staticmap.MapType) bool {
	_, err := os.Stat(s.Path(city, neighborhood, mapType))
	return err == nil
}

// Write stores an artifact, creating the directory tree as needed.
func (s *Store) Write(city, neighborhood string, mapType staticmap.MapType, data []byte) error {
	path := s.Path(city, neighborhood, mapType)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
