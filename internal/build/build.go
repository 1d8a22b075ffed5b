// Package build runs the texture pipeline for every configured texture:
// synthesis, PNG encoding, file output, optional preview sheets, and the
// build manifest.
package build

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aellingwood/texgen/internal/config"
	"github.com/aellingwood/texgen/internal/manifest"
	"github.com/aellingwood/texgen/internal/pngenc"
	"github.com/aellingwood/texgen/internal/preview"
	"github.com/aellingwood/texgen/internal/texture"
)

// StateDir is the directory, relative to the project root, holding the
// manifest and preview sheets.
const StateDir = ".texgen"

// BuildOptions controls the behaviour of the build pipeline.
type BuildOptions struct {
	ProjectRoot string
	Only        []string // texture names or profiles; empty means all
	Preview     bool     // write preview sheets even if the config disables them
	Verbose     bool     // log each texture as it is written
}

// BuildResult contains statistics about the completed build.
type BuildResult struct {
	Namespace string
	Textures  []Output
	Previews  []preview.Sheet
	Duration  time.Duration
}

// Output describes one written texture.
type Output struct {
	Name    string
	Profile string
	Size    int
	Seed    int64
	Path    string // absolute
	RelPath string // relative to the project root
	Bytes   int
	SHA256  string
}

// job pairs a texture with its resolved profile.
type job struct {
	tex     config.TextureConfig
	profile texture.Profile
}

// Builder coordinates the texture pipeline. Build may be called repeatedly;
// concurrent calls are serialized.
type Builder struct {
	mu      sync.Mutex
	config  *config.Config
	options BuildOptions
}

// NewBuilder creates a new Builder with the given configuration and options.
func NewBuilder(cfg *config.Config, opts BuildOptions) *Builder {
	return &Builder{
		config:  cfg,
		options: opts,
	}
}

// SetConfig replaces the configuration used by subsequent builds.
func (b *Builder) SetConfig(cfg *config.Config) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.config = cfg
}

// Build executes the pipeline and returns a BuildResult summarizing what was
// written. The steps are:
//  1. Resolve the project root
//  2. Select textures and resolve every profile (no file is touched if any
//     texture is misconfigured)
//  3. For each texture: synthesize, encode, write
//  4. Write preview sheets if enabled
//  5. Save the manifest
//
// If a texture fails part way, the manifest is still saved for the textures
// already written, so their status stays accurate.
func (b *Builder) Build() (*BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	result := &BuildResult{Namespace: b.config.Namespace}

	projectRoot, err := b.projectRoot()
	if err != nil {
		return nil, err
	}

	jobs, err := b.plan()
	if err != nil {
		return nil, err
	}

	store, err := manifest.Open(filepath.Join(projectRoot, StateDir))
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	previewOpts := preview.Options{
		Dir:     b.previewDir(projectRoot),
		Scale:   b.config.Preview.Scale,
		Formats: b.config.Preview.Formats,
	}
	withPreview := b.options.Preview || b.config.Preview.Enabled

	// fail keeps the manifest in step with what is already on disk.
	fail := func(err error) (*BuildResult, error) {
		if len(result.Textures) > 0 {
			if serr := store.Save(); serr != nil {
				log.Printf("warning: saving manifest: %v", serr)
			}
		}
		return nil, err
	}

	for _, j := range jobs {
		img, data, err := Render(j.profile, j.tex)
		if err != nil {
			return fail(fmt.Errorf("rendering %s: %w", j.tex.Name, err))
		}

		path := b.config.TexturePath(projectRoot, j.tex)
		if err := WriteFile(path, data); err != nil {
			return fail(err)
		}

		out := Output{
			Name:    j.tex.Name,
			Profile: j.profile.Name,
			Size:    j.tex.Size,
			Seed:    j.tex.Seed,
			Path:    path,
			RelPath: relPath(projectRoot, path),
			Bytes:   len(data),
			SHA256:  manifest.Hash(data),
		}
		result.Textures = append(result.Textures, out)
		store.Record(out.RelPath, out.entry())
		if b.options.Verbose {
			log.Printf("Rendered %s (%s, %dx%d, seed %d, %d bytes)",
				out.RelPath, out.Profile, out.Size, out.Size, out.Seed, out.Bytes)
		}

		if withPreview {
			sheets, err := preview.Write(j.tex.Name, img, previewOpts)
			if err != nil {
				return fail(fmt.Errorf("writing preview for %s: %w", j.tex.Name, err))
			}
			result.Previews = append(result.Previews, sheets...)
		}
	}

	if err := store.Save(); err != nil {
		return nil, fmt.Errorf("saving manifest: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Render synthesizes the texture described by tex with profile p and returns
// both the pixels and the encoded PNG.
func Render(p texture.Profile, tex config.TextureConfig) (*image.RGBA, []byte, error) {
	img := p.Generate(tex.Size, tex.Seed)
	data, err := pngenc.Marshal(tex.Size, tex.Size, img.Pix)
	if err != nil {
		return nil, nil, err
	}
	return img, data, nil
}

// plan selects the textures to build and resolves their profiles.
func (b *Builder) plan() ([]job, error) {
	selected, err := b.config.Select(b.options.Only)
	if err != nil {
		return nil, err
	}

	jobs := make([]job, 0, len(selected))
	for _, tex := range selected {
		p, err := texture.Lookup(tex.Profile)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", tex.Name, err)
		}
		jobs = append(jobs, job{tex: tex, profile: p})
	}
	return jobs, nil
}

func (b *Builder) projectRoot() (string, error) {
	if b.options.ProjectRoot != "" {
		return b.options.ProjectRoot, nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determining project root: %w", err)
	}
	return root, nil
}

func (b *Builder) previewDir(projectRoot string) string {
	dir := b.config.Preview.Dir
	if dir == "" {
		dir = filepath.Join(StateDir, "preview")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectRoot, dir)
	}
	return dir
}

func (o Output) entry() manifest.Entry {
	return manifest.Entry{
		Name:    o.Name,
		Profile: o.Profile,
		Size:    o.Size,
		Seed:    o.Seed,
		SHA256:  o.SHA256,
	}
}
