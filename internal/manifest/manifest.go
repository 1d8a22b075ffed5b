// Package manifest records what the last build wrote, so later runs can tell
// which textures on disk are current, stale, or missing.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// manifestVersion is bumped when the manifest format changes.
const manifestVersion = "1"

// FileName is the manifest's file name inside its directory.
const FileName = "manifest.json"

// Manifest is the top-level structure persisted as manifest.json.
type Manifest struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"` // keyed by texture path relative to the project root
}

// Entry records the inputs and output digest of one generated texture.
type Entry struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
	Size    int    `json:"size"`
	Seed    int64  `json:"seed"`
	SHA256  string `json:"sha256"`
}

// sameInputs reports whether e and o were generated from the same recipe.
func (e *Entry) sameInputs(o Entry) bool {
	return e.Name == o.Name && e.Profile == o.Profile && e.Size == o.Size && e.Seed == o.Seed
}

// Status describes a texture on disk relative to its manifest entry.
type Status string

const (
	StatusOK        Status = "ok"
	StatusStale     Status = "stale"     // recipe changed or file edited since the last build
	StatusMissing   Status = "missing"   // no file on disk
	StatusUntracked Status = "untracked" // file exists but was never recorded
)

// Store manages the manifest on disk. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	dir      string // e.g. .texgen/
	manifest Manifest
}

// Open creates a Store rooted at dir. If a manifest.json already exists there
// it is loaded; otherwise an empty manifest is initialised. The directory
// itself is only created by Save.
func Open(dir string) (*Store, error) {
	s := &Store{
		dir: dir,
		manifest: Manifest{
			Version: manifestVersion,
			Entries: make(map[string]*Entry),
		},
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		// Corrupt manifest: start fresh.
		return s, nil
	}
	if m.Version != manifestVersion {
		return s, nil
	}
	if m.Entries == nil {
		m.Entries = make(map[string]*Entry)
	}
	s.manifest = m
	return s, nil
}

// Record stores e under key, replacing any previous entry.
func (s *Store) Record(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifest.Entries[filepath.ToSlash(key)] = &e
}

// Lookup returns the entry stored under key.
func (s *Store) Lookup(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.manifest.Entries[filepath.ToSlash(key)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Status compares the file at path, recorded under key, against want, the
// recipe the current configuration would use. Digest and size fields of
// want other than the recipe are ignored.
func (s *Store) Status(key, path string, want Entry) (Status, error) {
	hash, err := HashFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, nil
		}
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	e, ok := s.Lookup(key)
	if !ok {
		return StatusUntracked, nil
	}
	if !e.sameInputs(want) || e.SHA256 != hash {
		return StatusStale, nil
	}
	return StatusOK, nil
}

// Save writes the current manifest to manifest.json, creating the directory
// if needed.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	data, err := json.MarshalIndent(s.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, FileName), data, 0o644)
}

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// HashFile computes the SHA-256 hex digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
