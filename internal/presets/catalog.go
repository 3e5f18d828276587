// Package presets is a small catalog of named palettes a CLI user can
// select by keyword instead of spelling out a full palette record,
// adapted from the teacher's palette.ColorPalettes keyword catalog onto
// colorspace.Palette (piecewise-linear stops rather than a ColorMap
// with its own Interpolate).
package presets

import "github.com/whalelogic/fractal/internal/colorspace"

func rgb(r, g, b uint8) colorspace.RGB {
	return colorspace.RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// entry is a named gradient: an ordered list of stop colors fed to
// colorspace.MakeLinear at a fixed resolution.
type entry struct {
	name  string
	stops []colorspace.RGB
}

var catalog = []entry{
	{"nebula-spectre", []colorspace.RGB{
		rgb(0x09, 0x04, 0x20),
		rgb(0x3A, 0x0F, 0x73),
		rgb(0x8D, 0x1A, 0xA8),
		rgb(0xE7, 0x36, 0x7F),
		rgb(0x3B, 0xD6, 0xC2),
		rgb(0xF0, 0xFF, 0xFF),
	}},
	{"monochrome-slate", []colorspace.RGB{
		rgb(0x00, 0x00, 0x00),
		rgb(0x70, 0x70, 0x70),
		rgb(0xff, 0xff, 0xff),
	}},
	{"metallic-chrome", []colorspace.RGB{
		rgb(0x06, 0x0b, 0x14),
		rgb(0x3a, 0x3f, 0x45),
		rgb(0x9e, 0xae, 0xb4),
		rgb(0xe7, 0xd8, 0xb0),
		rgb(0xff, 0xff, 0xff),
	}},
	{"thermal-heat", []colorspace.RGB{
		rgb(0x00, 0x00, 0x00),
		rgb(0x70, 0x00, 0x00),
		rgb(0xff, 0x40, 0x00),
		rgb(0xff, 0xd0, 0x00),
		rgb(0xff, 0xff, 0xff),
	}},
	{"aurora-arc", []colorspace.RGB{
		rgb(0x01, 0x13, 0x1f),
		rgb(0x03, 0x6b, 0x5f),
		rgb(0x54, 0xe6, 0xb2),
		rgb(0x95, 0x43, 0xd6),
		rgb(0xf8, 0xf9, 0xff),
	}},
}

// Named returns the n-entry palette for keyword, with a black sentinel
// appended, or false if keyword is not in the catalog.
func Named(keyword string, n int) (colorspace.Palette, bool) {
	for _, e := range catalog {
		if e.name == keyword {
			def := colorspace.RGB{R: 0, G: 0, B: 0}
			return colorspace.MakeLinear(n, e.stops, &def), true
		}
	}
	return nil, false
}

// Names returns every catalog keyword, in declaration order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}
