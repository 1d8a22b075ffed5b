package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating any missing parent directories.
// An existing file at path is overwritten.
func WriteFile(path string, data []byte) error {
	// Ensure the parent directory exists.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// relPath returns path relative to root when possible, for display and
// manifest keys. Paths outside root are returned unchanged.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
