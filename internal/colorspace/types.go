// Package colorspace builds color palettes and converts between the
// RGB/HSB/HSL/XYZ/Lab/LCh color spaces used by the compositor.
package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color triple with channels in [0,1].
type RGB struct {
	R, G, B float64
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Scale multiplies every channel by f (used to apply brightness).
func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Clamp01 clamps every channel to [0,1].
func (c RGB) Clamp01() RGB {
	return RGB{R: clamp(c.R, 0, 1), G: clamp(c.G, 0, 1), B: clamp(c.B, 0, 1)}
}

// Pow raises every channel to the given exponent (used for gamma correction).
func (c RGB) Pow(exp float64) RGB {
	return RGB{R: math.Pow(c.R, exp), G: math.Pow(c.G, exp), B: math.Pow(c.B, exp)}
}

// RGB8 is a quantized 8-bit-per-channel color, the pixel format written
// into the image buffer.
type RGB8 struct {
	R, G, B uint8
}

// Quantize rounds a clamped RGB color to 8 bits per channel per spec §4.4 step 6.
func (c RGB) Quantize() RGB8 {
	c = c.Clamp01()
	return RGB8{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
	}
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
