// Package imagestore persists binary payloads outside the database,
// one file per object under an images subdirectory of a document root.
// The database stores only the generated identifier as text.
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Subdir is the fixed subdirectory of the document root that holds
// stored payloads.
const Subdir = "images"

// Store is a directory-backed blob store. Identifiers are generated
// UUIDs, so Save never overwrites an existing object.
type Store struct {
	dir string
}

// New returns a store rooted at the application's document root. The
// images subdirectory is created lazily on first save.
func New(root string) *Store {
	return &Store{dir: filepath.Join(root, Subdir)}
}

// Save writes data under a fresh identifier and returns the identifier.
func (s *Store) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("imagestore: create directory: %w", err)
	}
	id := uuid.New().String()
	if err := os.WriteFile(filepath.Join(s.dir, id), data, 0o644); err != nil {
		return "", fmt.Errorf("imagestore: write %s: %w", id, err)
	}
	return id, nil
}

// Load returns the payload stored under id, or nil if no such object
// exists.
func (s *Store) Load(id string) ([]byte, error) {
	p, err := s.objectPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("imagestore: read %s: %w", id, err)
	}
	return data, nil
}

// Delete removes the object stored under id.
func (s *Store) Delete(id string) error {
	p, err := s.objectPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("imagestore: delete %s: %w", id, err)
	}
	return nil
}

// objectPath rejects identifiers that would resolve outside the store
// directory.
func (s *Store) objectPath(id string) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", fmt.Errorf("imagestore: invalid identifier %q", id)
	}
	return filepath.Join(s.dir, id), nil
}
