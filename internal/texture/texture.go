// Package texture synthesizes small placeholder block textures from value
// noise. Every profile is a pure function of its size and seed.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aellingwood/texgen/internal/noise"
	"github.com/agnivade/levenshtein"
)

// DefaultSize is the edge length, in pixels, of a standard block texture.
const DefaultSize = 16

// Generator renders a size x size opaque texture from seed. A size below 1
// yields an empty image.
type Generator func(size int, seed int64) *image.RGBA

// Profile is a named texture recipe.
type Profile struct {
	Name        string
	Description string
	DefaultSeed int64
	Generate    Generator
}

var registry = map[string]Profile{
	"dirt": {
		Name:        "dirt",
		Description: "brown two-octave noise with dark speckles",
		DefaultSeed: 1337,
		Generate:    Dirt,
	},
	"stone": {
		Name:        "stone",
		Description: "gray two-octave noise with three stepped streaks",
		DefaultSeed: 4242,
		Generate:    Stone,
	},
}

// Profiles returns all registered profiles sorted by name.
func Profiles() []Profile {
	out := make([]Profile, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Profile) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// UnknownProfileError is returned by Lookup for a name that is not registered.
type UnknownProfileError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownProfileError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown texture profile %q", e.Name)
	}
	return fmt.Sprintf("unknown texture profile %q (did you mean %s?)",
		e.Name, strings.Join(e.Suggestions, ", "))
}

// Lookup returns the profile registered under name. Matching is
// case-insensitive.
func Lookup(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := registry[key]; ok {
		return p, nil
	}
	return Profile{}, &UnknownProfileError{Name: name, Suggestions: suggest(key)}
}

// suggest returns registered names within a small edit distance of input.
func suggest(input string) []string {
	threshold := 2
	if len(input) > 6 {
		threshold = 3
	}

	var similar []string
	for _, p := range Profiles() {
		if levenshtein.ComputeDistance(input, p.Name) <= threshold {
			similar = append(similar, p.Name)
		}
	}
	return similar
}

// newRand returns the deterministic source a texture draws all randomness from.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// intRange returns a uniform integer in [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// blend fills img by mixing two noise fields with the given weights and
// mapping the result onto the lo..hi color ramp.
func blend(img *image.RGBA, coarse, fine *noise.Field, wCoarse, wFine float64, lo, hi color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := wCoarse*coarse.At(x, y) + wFine*fine.At(x, y)
			img.SetRGBA(x, y, Lerp(lo, hi, t))
		}
	}
}
