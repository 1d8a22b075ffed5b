package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/aellingwood/texgen/internal/noise"
)

// ---------------------------------------------------------------------------
// Color helpers
// ---------------------------------------------------------------------------

func TestLerp(t *testing.T) {
	lo := color.RGBA{R: 0x4E, G: 0x43, B: 0x3A, A: 0x10}
	hi := color.RGBA{R: 0x7A, G: 0x66, B: 0x56, A: 0x20}

	tests := []struct {
		name string
		t    float64
		want color.RGBA
	}{
		{"start", 0, color.RGBA{R: 0x4E, G: 0x43, B: 0x3A, A: 255}},
		{"end", 1, color.RGBA{R: 0x7A, G: 0x66, B: 0x56, A: 255}},
		// 78 + 44*0.5 = 100, 67 + 35*0.5 = 84.5 -> 84, 58 + 28*0.5 = 72
		{"middle truncates", 0.5, color.RGBA{R: 100, G: 84, B: 72, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(lo, hi, tt.t); got != tt.want {
				t.Errorf("Lerp(%v) = %v; want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		name  string
		in    color.RGBA
		delta int
		want  color.RGBA
	}{
		{"darken", color.RGBA{100, 90, 80, 255}, -10, color.RGBA{90, 80, 70, 255}},
		{"clamp low", color.RGBA{5, 20, 0, 255}, -18, color.RGBA{0, 2, 0, 255}},
		{"clamp high", color.RGBA{250, 200, 255, 255}, 10, color.RGBA{255, 210, 255, 255}},
		{"alpha untouched", color.RGBA{50, 50, 50, 128}, -25, color.RGBA{25, 25, 25, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shade(tt.in, tt.delta); got != tt.want {
				t.Errorf("Shade(%v, %d) = %v; want %v", tt.in, tt.delta, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestProfiles_Sorted(t *testing.T) {
	ps := Profiles()
	if len(ps) != 2 {
		t.Fatalf("Profiles() = %d entries; want 2", len(ps))
	}
	if ps[0].Name != "dirt" || ps[1].Name != "stone" {
		t.Errorf("Profiles() order = %q, %q; want dirt, stone", ps[0].Name, ps[1].Name)
	}
	if ps[0].DefaultSeed != 1337 || ps[1].DefaultSeed != 4242 {
		t.Errorf("default seeds = %d, %d; want 1337, 4242", ps[0].DefaultSeed, ps[1].DefaultSeed)
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup(" Stone ")
	if err != nil {
		t.Fatalf("Lookup(Stone): %v", err)
	}
	if p.Name != "stone" {
		t.Errorf("Name = %q; want stone", p.Name)
	}

	_, err = Lookup("drit")
	var upe *UnknownProfileError
	if !errors.As(err, &upe) {
		t.Fatalf("Lookup(drit) error = %v; want *UnknownProfileError", err)
	}
	if len(upe.Suggestions) != 1 || upe.Suggestions[0] != "dirt" {
		t.Errorf("Suggestions = %v; want [dirt]", upe.Suggestions)
	}

	_, err = Lookup("obsidian")
	if !errors.As(err, &upe) {
		t.Fatalf("Lookup(obsidian) error = %v; want *UnknownProfileError", err)
	}
	if len(upe.Suggestions) != 0 {
		t.Errorf("Suggestions = %v; want none", upe.Suggestions)
	}
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

func TestProfiles_Deterministic(t *testing.T) {
	for _, p := range Profiles() {
		t.Run(p.Name, func(t *testing.T) {
			a := p.Generate(DefaultSize, p.DefaultSeed)
			b := p.Generate(DefaultSize, p.DefaultSeed)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Error("same seed produced different pixels")
			}
			c := p.Generate(DefaultSize, p.DefaultSeed+1)
			if bytes.Equal(a.Pix, c.Pix) {
				t.Error("different seeds produced identical pixels")
			}
		})
	}
}

func TestProfiles_OpaqueAndSized(t *testing.T) {
	for _, p := range Profiles() {
		t.Run(p.Name, func(t *testing.T) {
			img := p.Generate(DefaultSize, p.DefaultSeed)
			if got := img.Bounds(); got != image.Rect(0, 0, 16, 16) {
				t.Fatalf("Bounds = %v; want 16x16", got)
			}
			if len(img.Pix) != 16*16*4 {
				t.Fatalf("len(Pix) = %d; want %d", len(img.Pix), 16*16*4)
			}
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] != 255 {
					t.Fatalf("alpha at byte %d = %d; want 255", i, img.Pix[i])
				}
			}
		})
	}
}

func TestDirtAndStoneDiffer(t *testing.T) {
	d := Dirt(16, 1337)
	s := Stone(16, 4242)
	if bytes.Equal(d.Pix, s.Pix) {
		t.Error("dirt and stone produced identical pixels")
	}
}

func TestDirt_ColorsWithinRamp(t *testing.T) {
	img := Dirt(16, 1337)
	for y := range 16 {
		for x := range 16 {
			c := img.RGBAAt(x, y)
			// Speckles darken by at most speckleMax below the ramp.
			if int(c.R) < int(dirtLow.R)-speckleMax || c.R > dirtHigh.R {
				t.Errorf("R at (%d,%d) = %d outside ramp", x, y, c.R)
			}
			if int(c.G) < int(dirtLow.G)-speckleMax || c.G > dirtHigh.G {
				t.Errorf("G at (%d,%d) = %d outside ramp", x, y, c.G)
			}
			if int(c.B) < int(dirtLow.B)-speckleMax || c.B > dirtHigh.B {
				t.Errorf("B at (%d,%d) = %d outside ramp", x, y, c.B)
			}
		}
	}
}

func TestProfiles_NonPositiveSizeIsEmpty(t *testing.T) {
	for _, p := range Profiles() {
		for _, size := range []int{0, -1, -16} {
			img := p.Generate(size, p.DefaultSeed)
			if !img.Bounds().Empty() || len(img.Pix) != 0 {
				t.Errorf("%s(%d): bounds %v, %d bytes; want empty", p.Name, size, img.Bounds(), len(img.Pix))
			}
		}
	}
}

func TestDirt_SpeckleShadeRange(t *testing.T) {
	for _, seed := range []int64{1337, 1, 99} {
		const size = 16

		// Rebuild the unspeckled base from the same random stream.
		rng := newRand(seed)
		coarse := noise.ValueNoise(size, size, dirtCoarseScale, rng)
		fine := noise.ValueNoise(size, size, dirtFineScale, rng)
		base := image.NewRGBA(image.Rect(0, 0, size, size))
		blend(base, coarse, fine, dirtCoarseWeight, dirtFineWeight, dirtLow, dirtHigh)

		img := Dirt(size, seed)
		speckles := 0
		for y := range size {
			for x := range size {
				got, want := img.RGBAAt(x, y), base.RGBAAt(x, y)
				if got == want {
					continue
				}
				speckles++
				d := int(want.R) - int(got.R)
				if d < speckleMin || d > speckleMax {
					t.Errorf("seed %d: pixel (%d,%d) darkened by %d; want [%d,%d]", seed, x, y, d, speckleMin, speckleMax)
				}
				if int(want.G)-int(got.G) != d || int(want.B)-int(got.B) != d {
					t.Errorf("seed %d: pixel (%d,%d) = %v from %v; want every channel darkened by %d", seed, x, y, got, want, d)
				}
				if got.A != 255 {
					t.Errorf("seed %d: pixel (%d,%d) alpha = %d; want 255", seed, x, y, got.A)
				}
			}
		}
		if speckles == 0 {
			t.Errorf("seed %d: no speckles in a %dx%d texture", seed, size, size)
		}
	}
}

func TestStone_GrayScale(t *testing.T) {
	img := Stone(16, 4242)
	for y := range 16 {
		for x := range 16 {
			c := img.RGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Errorf("pixel (%d,%d) = %v; want gray", x, y, c)
			}
		}
	}
}

func TestStone_StreaksOnlyTouchStreakRows(t *testing.T) {
	const size, seed = 16, 4242

	// Rebuild the unstreaked base from the same random stream.
	rng := newRand(seed)
	coarse := noise.ValueNoise(size, size, stoneCoarseScale, rng)
	fine := noise.ValueNoise(size, size, stoneFineScale, rng)
	base := image.NewRGBA(image.Rect(0, 0, size, size))
	blend(base, coarse, fine, stoneCoarseWeight, stoneFineWeight, stoneLow, stoneHigh)

	onStreak := make(map[image.Point]bool)
	for range streakCount {
		row := rng.IntN(size)
		d := intRange(rng, streakMin, streakMax)
		if d < streakMin || d > streakMax {
			t.Fatalf("streak shade %d outside [%d,%d]", d, streakMin, streakMax)
		}
		for x := range size {
			onStreak[image.Pt(x, StreakRow(row, x, size))] = true
		}
	}

	img := Stone(size, seed)
	for y := range size {
		for x := range size {
			got, want := img.RGBAAt(x, y), base.RGBAAt(x, y)
			if onStreak[image.Pt(x, y)] {
				if got.R >= want.R && want.R > 0 {
					t.Errorf("streak pixel (%d,%d) = %v; want darker than %v", x, y, got, want)
				}
			} else if got != want {
				t.Errorf("pixel (%d,%d) = %v; want untouched %v", x, y, got, want)
			}
		}
	}
}

func TestStreakRow(t *testing.T) {
	tests := []struct {
		base, x, height, want int
	}{
		{0, 0, 16, 0},
		{0, 2, 16, 0},
		{0, 3, 16, 1},
		{5, 15, 16, 10},
		{14, 9, 16, 1},
		{15, 15, 16, 4},
	}
	for _, tt := range tests {
		if got := StreakRow(tt.base, tt.x, tt.height); got != tt.want {
			t.Errorf("StreakRow(%d, %d, %d) = %d; want %d", tt.base, tt.x, tt.height, got, tt.want)
		}
	}
}
