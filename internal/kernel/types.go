// Package kernel implements the per-pixel escape-time iteration kernel
// for the Mandelbrot and Julia fractals, and the derived colorimetric
// quantities consumed by the compositor (spec.md §4.3).
package kernel

// Colorize selects which scalar quantity drives the color lookup.
type Colorize int

const (
	ColorizeIterations Colorize = iota
	ColorizeDistance
	ColorizePotential
)

// PaletteMode selects how a scalar is mapped onto the palette.
type PaletteMode int

const (
	PaletteLinear PaletteMode = iota
	PaletteModulo
	PaletteHue
	PaletteHueDyn
	PaletteLchDyn
)

// Options is the bitset of colorization options (spec §3).
type Options uint8

const (
	OptOrbits Options = 1 << iota
	OptInsideDistance
	OptSimple3D
	OptBlinnPhong3D
)

// Has reports whether all bits in mask are set.
func (o Options) Has(mask Options) bool { return o&mask == mask }

// Resolved applies the Simple3D/BlinnPhong3D mutual-exclusion precedence:
// if both are set, BlinnPhong3D wins (spec §3).
func (o Options) Resolved() Options {
	if o.Has(OptSimple3D) && o.Has(OptBlinnPhong3D) {
		return o &^ OptSimple3D
	}
	return o
}

// Result is the kernel's per-pixel output, covering both the escape and
// interior paths of spec §4.3.
type Result struct {
	Escaped bool

	// Valid when Escaped.
	ISmooth  float64 // fractional escape iteration (smooth iteration count)
	NZ       float64 // |z|^2 at escape
	Z        complex128
	Dz       complex128
	StripeA  float64
	Distance float64
	Potential float64

	// Valid when !Escaped.
	I int // MaxIter on the plain interior path; the iteration at which a period was found when InsideColor is set

	// InsideColor is set only for the orbit-based interior coloring path
	// (spec §4.3 "Orbit-based interior coloring"); nil otherwise.
	InsideColor *[3]float64
}

// Params bundles the per-render-settings iteration parameters that are
// constant across all pixels, so the hot loop only branches on values
// fixed for the whole render (spec §9: "compile-time monomorphized flags").
type Params struct {
	MaxIter     int
	Bailout     float64 // squared radius
	OrbitsOn    bool
	StripeS     float64
	StripeSigma float64
	DistanceOn  bool
	AnyShading  bool // Simple3D or BlinnPhong3D requested
}

// ResolveMaxIter applies spec §4.3's numerical invariants: max_iter is
// raised to at least 1000 when orbits are enabled, and to at least 4096
// when colorize is Distance or Potential.
func ResolveMaxIter(requested int, colorize Colorize, orbitsOn bool) int {
	maxIter := requested
	if orbitsOn && maxIter < 1000 {
		maxIter = 1000
	}
	if (colorize == ColorizeDistance || colorize == ColorizePotential) && maxIter < 4096 {
		maxIter = 4096
	}
	return maxIter
}

// ResolveBailout applies spec §4.3: bailout is 4 for pure iteration-count
// coloring under a linear/modulo palette with no 3-D shading; otherwise 1e10
// so smooth iteration and its derivatives remain well defined.
func ResolveBailout(colorize Colorize, mode PaletteMode, opts Options) float64 {
	opts = opts.Resolved()
	plain := colorize == ColorizeIterations &&
		(mode == PaletteLinear || mode == PaletteModulo) &&
		!opts.Has(OptSimple3D) && !opts.Has(OptBlinnPhong3D)
	if plain {
		return 4.0
	}
	return 1e10
}
