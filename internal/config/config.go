// Package config handles loading, validating, and managing the texture
// generator configuration.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aellingwood/texgen/internal/texture"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for a texgen run.
type Config struct {
	OutputRoot string          `yaml:"outputRoot" toml:"outputRoot" mapstructure:"outputRoot"`
	Namespace  string          `yaml:"namespace"  toml:"namespace"  mapstructure:"namespace"`
	Textures   []TextureConfig `yaml:"textures"   toml:"textures"   mapstructure:"textures"`
	Preview    PreviewConfig   `yaml:"preview"    toml:"preview"    mapstructure:"preview"`
	Watch      WatchConfig     `yaml:"watch"      toml:"watch"      mapstructure:"watch"`
}

// TextureConfig describes one generated texture file.
type TextureConfig struct {
	Name    string `yaml:"name"    toml:"name"    mapstructure:"name"`
	Profile string `yaml:"profile" toml:"profile" mapstructure:"profile"`
	Size    int    `yaml:"size"    toml:"size"    mapstructure:"size"`
	Seed    int64  `yaml:"seed"    toml:"seed"    mapstructure:"seed"`
	Kind    string `yaml:"kind"    toml:"kind"    mapstructure:"kind"`
}

// PreviewConfig controls the enlarged, tiled preview sheets.
type PreviewConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled" mapstructure:"enabled"`
	Dir     string   `yaml:"dir"     toml:"dir"     mapstructure:"dir"`
	Scale   int      `yaml:"scale"   toml:"scale"   mapstructure:"scale"`
	Formats []string `yaml:"formats" toml:"formats" mapstructure:"formats"`
}

// WatchConfig controls `texgen watch`.
type WatchConfig struct {
	DebounceMS int `yaml:"debounceMs" toml:"debounceMs" mapstructure:"debounceMs"`
}

// MaxSize bounds texture edge length. Block textures are tiny; anything larger
// is almost certainly a typo.
const MaxSize = 4096

// Default returns a Config that produces the two wasteland block textures.
func Default() *Config {
	return &Config{
		OutputRoot: filepath.Join("src", "main", "resources"),
		Namespace:  "wasteland",
		Textures: []TextureConfig{
			{Name: "wasteland_dirt", Profile: "dirt", Size: 16, Seed: 1337, Kind: "block"},
			{Name: "wasteland_block", Profile: "stone", Size: 16, Seed: 4242, Kind: "block"},
		},
		Preview: PreviewConfig{
			Enabled: false,
			Dir:     filepath.Join(".texgen", "preview"),
			Scale:   8,
			Formats: []string{"png"},
		},
		Watch: WatchConfig{
			DebounceMS: 100,
		},
	}
}

// Load reads a configuration file from configPath (YAML or TOML) and returns
// a Config with defaults applied first and file values overlaid on top.
// A texture that leaves out seed uses its profile's default seed.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()

	// Determine format from extension.
	ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
	switch ext {
	case "yaml", "yml":
		v.SetConfigType("yaml")
	case "toml":
		v.SetConfigType("toml")
	default:
		// Default to toml if unrecognised.
		v.SetConfigType("toml")
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Lists from the file replace the defaults rather than merging into them
	// element by element.
	var unseeded []bool
	if v.IsSet("textures") {
		cfg.Textures = nil
		unseeded = missingKey(v.Get("textures"), "seed")
	}
	if v.IsSet("preview.formats") {
		cfg.Preview.Formats = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.normalize()
	cfg.applyDefaultSeeds(unseeded)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOptional behaves like Load but returns Default when configPath does not
// exist, so the generator runs with no setup at all.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// normalize fills per-texture defaults and canonicalises names.
func (c *Config) normalize() {
	for i := range c.Textures {
		t := &c.Textures[i]
		t.Name = BlockName(t.Name)
		t.Profile = strings.ToLower(strings.TrimSpace(t.Profile))
		if t.Kind == "" {
			t.Kind = "block"
		}
		if t.Size == 0 {
			t.Size = 16
		}
	}
	for i, f := range c.Preview.Formats {
		c.Preview.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
}

// applyDefaultSeeds gives every texture flagged in unseeded the default seed
// of its profile. Unknown profiles are left alone; the build reports them.
func (c *Config) applyDefaultSeeds(unseeded []bool) {
	for i := range c.Textures {
		if i >= len(unseeded) || !unseeded[i] {
			continue
		}
		if p, err := texture.Lookup(c.Textures[i].Profile); err == nil {
			c.Textures[i].Seed = p.DefaultSeed
		}
	}
}

// missingKey reports, for each table in the raw list, whether key is absent.
// An explicit zero is a real value and is not reported.
func missingKey(raw any, key string) []bool {
	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []map[string]any:
		for _, m := range list {
			items = append(items, m)
		}
	default:
		return nil
	}

	out := make([]bool, len(items))
	for i, item := range items {
		out[i] = !hasKey(item, key)
	}
	return out
}

func hasKey(item any, key string) bool {
	switch m := item.(type) {
	case map[string]any:
		for k := range m {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	case map[any]any:
		for k := range m {
			if s, ok := k.(string); ok && strings.EqualFold(s, key) {
				return true
			}
		}
	}
	return false
}

// Validate checks the Config for common errors.
// It returns a descriptive error if:
//   - Namespace is empty or not a valid resource namespace
//   - no textures are configured
//   - a texture has an empty or duplicate name, no profile, or a size
//     outside [1, MaxSize]
//   - preview settings are out of range
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Namespace) == "" {
		return fmt.Errorf("config: namespace is required")
	}
	if BlockName(c.Namespace) != c.Namespace {
		return fmt.Errorf("config: namespace %q must be lowercase letters, digits and underscores", c.Namespace)
	}

	if len(c.Textures) == 0 {
		return fmt.Errorf("config: at least one texture is required")
	}

	seen := make(map[string]bool)
	for i, t := range c.Textures {
		if t.Name == "" {
			return fmt.Errorf("config: textures[%d]: name is required", i)
		}
		if seen[t.Kind+"/"+t.Name] {
			return fmt.Errorf("config: textures[%d]: duplicate texture %q", i, t.Name)
		}
		seen[t.Kind+"/"+t.Name] = true

		if t.Profile == "" {
			return fmt.Errorf("config: textures[%d] (%s): profile is required", i, t.Name)
		}
		if t.Size < 1 || t.Size > MaxSize {
			return fmt.Errorf("config: textures[%d] (%s): size must be between 1 and %d (got %d)", i, t.Name, MaxSize, t.Size)
		}
		if BlockName(t.Kind) != t.Kind {
			return fmt.Errorf("config: textures[%d] (%s): invalid kind %q", i, t.Name, t.Kind)
		}
	}

	if c.Preview.Scale < 1 {
		return fmt.Errorf("config: preview.scale must be at least 1 (got %d)", c.Preview.Scale)
	}
	for _, f := range c.Preview.Formats {
		if !slices.Contains([]string{"png", "webp"}, f) {
			return fmt.Errorf("config: preview.formats: unsupported format %q", f)
		}
	}

	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("config: watch.debounceMs must not be negative")
	}

	return nil
}

// WithOverrides applies CLI flag overrides to the config. Known keys are
// mapped to their corresponding struct fields. The modified config is returned
// for convenient chaining.
func (c *Config) WithOverrides(overrides map[string]any) *Config {
	for key, val := range overrides {
		switch key {
		case "outputRoot":
			if s, ok := val.(string); ok {
				c.OutputRoot = s
			}
		case "namespace":
			if s, ok := val.(string); ok {
				c.Namespace = s
			}
		case "size":
			if n, ok := val.(int); ok {
				for i := range c.Textures {
					c.Textures[i].Size = n
				}
			}
		case "preview":
			if b, ok := val.(bool); ok {
				c.Preview.Enabled = b
			}
		case "previewScale":
			if n, ok := val.(int); ok {
				c.Preview.Scale = n
			}
		}
	}
	return c
}

// TexturePath returns where t is written, relative to projectRoot:
// {outputRoot}/assets/{namespace}/textures/{kind}/{name}.png.
func (c *Config) TexturePath(projectRoot string, t TextureConfig) string {
	root := c.OutputRoot
	if !filepath.IsAbs(root) {
		root = filepath.Join(projectRoot, root)
	}
	return filepath.Join(root, "assets", c.Namespace, "textures", t.Kind, t.Name+".png")
}

// Select returns the textures whose name or profile matches one of names, in
// configuration order. An empty names list selects every texture.
func (c *Config) Select(names []string) ([]TextureConfig, error) {
	if len(names) == 0 {
		return c.Textures, nil
	}

	var out []TextureConfig
	for _, n := range names {
		key := BlockName(n)
		found := false
		for _, t := range c.Textures {
			if t.Name == key || t.Profile == key {
				if !slices.Contains(out, t) {
					out = append(out, t)
				}
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("no configured texture named %q", n)
		}
	}
	return out, nil
}

// WriteTOML encodes the config as TOML, suitable for a starter texgen.toml.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return nil
}

// YAML returns the config rendered as YAML.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
