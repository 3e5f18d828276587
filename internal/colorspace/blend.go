package colorspace

// HardLight is the hard-light channel blend used by the stripe/step
// overlay and to merge the palette color with brightness (spec §4.1).
func HardLight(x, y float64) float64 {
	if y < 0.5 {
		return 2 * x * y
	}
	return 1 - 2*(1-x)*(1-y)
}

// HardLightRGB applies HardLight channel-wise, blending color with brightness.
func HardLightRGB(color RGB, bright float64) RGB {
	return RGB{
		R: HardLight(color.R, bright),
		G: HardLight(color.G, bright),
		B: HardLight(color.B, bright),
	}
}
