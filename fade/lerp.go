package fade

import (
	"image/color"
	"math"
)

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpNRGBA interpolates each channel of two non-premultiplied colors.
func LerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(LerpFloat64(float64(a), float64(b), t))
	return uint8(clamp(v, 0, 255))
}

// Identity is the normalizer for scalar properties already in [0, 1].
func Identity(v float64) float64 {
	return v
}

// AlphaOf normalizes a color by its alpha channel.
func AlphaOf(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
