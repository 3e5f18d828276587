package render

import (
	"github.com/whalelogic/fractal/internal/kernel"
	"github.com/whalelogic/fractal/internal/shading"
)

// Driver selects which rendering strategy fills the image (spec.md §4.5).
type Driver int

const (
	// DriverVectorized computes every pixel directly, parallelized by row.
	DriverVectorized Driver = iota
	// DriverSQEMRecursive uses recursive square estimation with shared edges.
	DriverSQEMRecursive
	// DriverSQEMLinear uses an explicit-stack square estimation, for images
	// too large to recurse comfortably.
	DriverSQEMLinear
)

// Settings bundles everything about a render that is independent of the
// fractal, view and output size: colorization, palette indexing, shading
// and the stripe/step overlay knobs (spec.md §3's color_par/light_par).
type Settings struct {
	Colorize    kernel.Colorize
	PaletteMode kernel.PaletteMode
	Options     kernel.Options

	Stripes     uint32
	StripeSigma float64 // defaults to 0.9 when zero, matching the original's fixed constant
	Steps       uint32
	NCycle      uint32

	Light shading.Light

	// Oversampling is clamped to [1,3]; each output pixel is the box-filter
	// average of an Oversampling×Oversampling block of internally rendered
	// pixels. Oversampling==1 is a bit-exact passthrough (spec §8 invariant 7).
	Oversampling int

	Driver Driver

	// Workers bounds the number of goroutines used to parallelize the
	// render; zero falls back to Renderer.Workers, and to runtime.NumCPU()
	// if that is also zero.
	Workers int
}

func (s Settings) stripeSigma() float64 {
	if s.StripeSigma <= 0 {
		return 0.9
	}
	return s.StripeSigma
}

func (s Settings) oversampling() int {
	o := s.Oversampling
	if o < 1 {
		o = 1
	}
	if o > 3 {
		o = 3
	}
	return o
}
