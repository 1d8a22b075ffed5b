// Package preview renders enlarged, tiled copies of generated textures so
// seams and noise scale can be judged by eye before the textures are used
// in game.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
)

// Tiles is the number of copies placed along each axis of a sheet.
const Tiles = 2

// Options controls preview sheet generation.
type Options struct {
	Dir     string   // output directory
	Scale   int      // nearest-neighbour magnification, >= 1
	Formats []string // "png" and/or "webp"
}

// Sheet describes one written preview file.
type Sheet struct {
	Name   string
	Format string
	Path   string
	Width  int
	Height int
}

// Render magnifies img by scale with nearest-neighbour sampling and tiles
// the result Tiles x Tiles times. A seamless texture shows no visible edge
// where the copies meet.
func Render(img image.Image, scale int) *image.NRGBA {
	scale = max(scale, 1)
	b := img.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale

	enlarged := imaging.Resize(img, w, h, imaging.NearestNeighbor)

	sheet := imaging.New(w*Tiles, h*Tiles, color.Transparent)
	for ty := range Tiles {
		for tx := range Tiles {
			sheet = imaging.Paste(sheet, enlarged, image.Pt(tx*w, ty*h))
		}
	}
	return sheet
}

// Write renders img and writes one sheet per configured format to
// {dir}/{name}-preview.{ext}.
func Write(name string, img image.Image, opts Options) ([]Sheet, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating preview directory: %w", err)
	}

	sheet := Render(img, opts.Scale)
	b := sheet.Bounds()

	var sheets []Sheet
	for _, format := range normalizeFormats(opts.Formats) {
		path := filepath.Join(opts.Dir, fmt.Sprintf("%s-preview.%s", name, format))
		if err := encodeImage(sheet, path, format); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", path, err)
		}
		sheets = append(sheets, Sheet{
			Name:   name,
			Format: format,
			Path:   path,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return sheets, nil
}

// normalizeFormats lowercases and dedupes formats, defaulting to png.
func normalizeFormats(formats []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []string{"png"}
	}
	return out
}

// encodeImage writes img to outPath in the specified format.
func encodeImage(img image.Image, outPath, format string) error {
	if format != "png" && format != "webp" {
		return fmt.Errorf("unsupported preview format %q", format)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "webp":
		if err := webp.Encode(f, img, webp.Options{Lossless: true}); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	default:
		if err := imaging.Encode(f, img, imaging.PNG); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	}
	return f.Close()
}
