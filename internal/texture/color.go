package texture

import "image/color"

// lerpChannel interpolates between two channel values, truncating toward zero.
func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Lerp interpolates the color channels of lo and hi by t. The result is
// always fully opaque.
func Lerp(lo, hi color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(lo.R, hi.R, t),
		G: lerpChannel(lo.G, hi.G, t),
		B: lerpChannel(lo.B, hi.B, t),
		A: 255,
	}
}

// Shade adds delta to the red, green and blue channels of c, clamping each to
// [0, 255]. Alpha is left untouched.
func Shade(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: clamp(int(c.R) + delta),
		G: clamp(int(c.G) + delta),
		B: clamp(int(c.B) + delta),
		A: c.A,
	}
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
