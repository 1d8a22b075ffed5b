// Package noise generates tileable value noise: smooth pseudo-random fields
// built by bilinearly interpolating a coarse grid of random samples.
package noise

import (
	"math"
	"math/rand/v2"
)

// Grid is the coarse control lattice a Field is interpolated from. Indices
// wrap in both axes, so sampling is periodic with period (Width, Height) in
// grid coordinates.
type Grid struct {
	Width  int
	Height int
	Values []float64 // row-major, len == Width*Height
}

// NewGrid builds the control grid for a width x height field at the given
// scale. Each axis holds max(1, dim/scale) cells; scale is clamped to at
// least 1. Cells are drawn from rng in row-major order.
func NewGrid(width, height, scale int, rng *rand.Rand) *Grid {
	scale = max(scale, 1)
	gw := max(1, width/scale)
	gh := max(1, height/scale)

	g := &Grid{
		Width:  gw,
		Height: gh,
		Values: make([]float64, gw*gh),
	}
	for i := range g.Values {
		g.Values[i] = rng.Float64()
	}
	return g
}

// Sample returns the interpolated value at grid coordinates (fx, fy).
func (g *Grid) Sample(fx, fy float64) float64 {
	fx0 := math.Floor(fx)
	fy0 := math.Floor(fy)
	tx := fx - fx0
	ty := fy - fy0

	x0 := wrap(int(fx0), g.Width)
	x1 := (x0 + 1) % g.Width
	y0 := wrap(int(fy0), g.Height)
	y1 := (y0 + 1) % g.Height

	v00 := g.at(x0, y0)
	v10 := g.at(x1, y0)
	v01 := g.at(x0, y1)
	v11 := g.at(x1, y1)

	nx0 := lerp(v00, v10, tx)
	nx1 := lerp(v01, v11, tx)
	return lerp(nx0, nx1, ty)
}

func (g *Grid) at(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Field is a width x height array of noise values in [0, 1).
type Field struct {
	Width  int
	Height int
	Values []float64 // row-major
}

// ValueNoise returns a width x height field sampled from a fresh control grid.
// Pixel (x, y) maps to grid coordinates (x/scale, y/scale).
func ValueNoise(width, height, scale int, rng *rand.Rand) *Field {
	scale = max(scale, 1)
	g := NewGrid(width, height, scale, rng)
	return g.Render(width, height, scale)
}

// Render samples g at every pixel of a width x height field.
func (g *Grid) Render(width, height, scale int) *Field {
	scale = max(scale, 1)
	f := &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
	s := float64(scale)
	for y := range height {
		fy := float64(y) / s
		row := f.Values[y*width : (y+1)*width]
		for x := range width {
			row[x] = g.Sample(float64(x)/s, fy)
		}
	}
	return f
}

// At returns the value at (x, y). Coordinates outside the field wrap around.
func (f *Field) At(x, y int) float64 {
	return f.Values[wrap(y, f.Height)*f.Width+wrap(x, f.Width)]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// wrap reduces i into [0, n), also for negative i.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
