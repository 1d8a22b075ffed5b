package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aellingwood/texgen/internal/config"
	"github.com/aellingwood/texgen/internal/manifest"
	"github.com/aellingwood/texgen/internal/pngenc"
)

// TextureStatus reports the on-disk state of one configured texture.
type TextureStatus struct {
	Texture config.TextureConfig
	RelPath string
	Status  manifest.Status
	Width   int // from the file header; zero when missing or unreadable
	Height  int
}

// Status reports, for each configured texture, whether the file on disk
// matches what the current configuration would produce.
func Status(cfg *config.Config, projectRoot string) ([]TextureStatus, error) {
	store, err := manifest.Open(filepath.Join(projectRoot, StateDir))
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	var out []TextureStatus
	for _, tex := range cfg.Textures {
		path := cfg.TexturePath(projectRoot, tex)
		rel := relPath(projectRoot, path)

		st, err := store.Status(rel, path, manifest.Entry{
			Name:    tex.Name,
			Profile: tex.Profile,
			Size:    tex.Size,
			Seed:    tex.Seed,
		})
		if err != nil {
			return nil, err
		}

		ts := TextureStatus{Texture: tex, RelPath: rel, Status: st}
		if st != manifest.StatusMissing {
			if data, err := os.ReadFile(path); err == nil {
				if w, h, err := pngenc.Inspect(data); err == nil {
					ts.Width, ts.Height = w, h
				} else {
					ts.Status = manifest.StatusStale
				}
			}
		}
		out = append(out, ts)
	}
	return out, nil
}
