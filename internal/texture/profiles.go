package texture

import (
	"image"
	"image/color"

	"github.com/aellingwood/texgen/internal/noise"
)

var (
	dirtLow  = color.RGBA{R: 0x4E, G: 0x43, B: 0x3A, A: 0xFF} // dark brown
	dirtHigh = color.RGBA{R: 0x7A, G: 0x66, B: 0x56, A: 0xFF} // light brown

	stoneLow  = color.RGBA{R: 0x5E, G: 0x5E, B: 0x5E, A: 0xFF}
	stoneHigh = color.RGBA{R: 0x78, G: 0x78, B: 0x78, A: 0xFF}
)

const (
	dirtCoarseScale  = 6
	dirtFineScale    = 3
	dirtCoarseWeight = 0.65
	dirtFineWeight   = 0.35
	speckleChance    = 0.06
	speckleMin       = 8
	speckleMax       = 18

	stoneCoarseScale  = 7
	stoneFineScale    = 3
	stoneCoarseWeight = 0.7
	stoneFineWeight   = 0.3
	streakCount       = 3
	streakStep        = 3 // columns per one-row drop
	streakMin         = 10
	streakMax         = 25
)

// Dirt renders a brown noise texture with sparse darker speckles.
func Dirt(size int, seed int64) *image.RGBA {
	if size < 1 {
		return image.NewRGBA(image.Rectangle{})
	}
	rng := newRand(seed)
	coarse := noise.ValueNoise(size, size, dirtCoarseScale, rng)
	fine := noise.ValueNoise(size, size, dirtFineScale, rng)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	blend(img, coarse, fine, dirtCoarseWeight, dirtFineWeight, dirtLow, dirtHigh)

	for y := range size {
		for x := range size {
			if rng.Float64() < speckleChance {
				d := intRange(rng, speckleMin, speckleMax)
				img.SetRGBA(x, y, Shade(img.RGBAAt(x, y), -d))
			}
		}
	}
	return img
}

// Stone renders a gray noise texture crossed by streaks that step down one
// row every few columns and wrap at the bottom edge.
func Stone(size int, seed int64) *image.RGBA {
	if size < 1 {
		return image.NewRGBA(image.Rectangle{})
	}
	rng := newRand(seed)
	coarse := noise.ValueNoise(size, size, stoneCoarseScale, rng)
	fine := noise.ValueNoise(size, size, stoneFineScale, rng)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	blend(img, coarse, fine, stoneCoarseWeight, stoneFineWeight, stoneLow, stoneHigh)

	for range streakCount {
		base := rng.IntN(size)
		d := intRange(rng, streakMin, streakMax)
		for x := range size {
			y := StreakRow(base, x, size)
			img.SetRGBA(x, y, Shade(img.RGBAAt(x, y), -d))
		}
	}
	return img
}

// StreakRow returns the row a stone streak starting at base occupies in
// column x of a texture with the given height.
func StreakRow(base, x, height int) int {
	return (base + x/streakStep) % height
}
