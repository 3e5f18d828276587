package colorspace

import "github.com/lucasb-eyer/go-colorful"

// RGBToXYZ converts a gamma-encoded sRGB triple to CIE XYZ (D65), delegating
// to go-colorful's float64-native color math (spec §4.1).
func RGBToXYZ(c RGB) (x, y, z float64) {
	return c.toColorful().Xyz()
}

// XYZToRGB converts CIE XYZ (D65) back to gamma-encoded sRGB.
func XYZToRGB(x, y, z float64) RGB {
	return fromColorful(colorful.Xyz(x, y, z))
}

// RGBToLab converts RGB to CIELAB (D65 reference white).
func RGBToLab(c RGB) (l, a, b float64) {
	return c.toColorful().Lab()
}

// LabToRGB converts CIELAB (D65 reference white) back to RGB.
func LabToRGB(l, a, b float64) RGB {
	return fromColorful(colorful.Lab(l, a, b))
}

// RGBToLCh converts RGB to the cylindrical CIELCh representation of CIELAB.
func RGBToLCh(c RGB) (l, ch, h float64) {
	return c.toColorful().LabLCh()
}

// LCh converts an (L, C, h) triple to RGB. h is in degrees.
func LCh(l, ch, h float64) RGB {
	return fromColorful(colorful.LabLCh(l, ch, h))
}

// HSLToRGB converts HSL (h in degrees, s/l in [0,1]) to RGB.
func HSLToRGB(h, s, l float64) RGB {
	return fromColorful(colorful.Hsl(h, s, l))
}

// HSBToRGB converts HSB/HSV (h, s, v all in [0,1], h as a fraction of
// a full turn per spec.md's hsb_to_rgb usage) to RGB.
func HSBToRGB(h, s, v float64) RGB {
	return fromColorful(colorful.Hsv(h*360, s, v))
}
