package config

import "runtime"

// Flags holds CLI flag values that override a loaded preset record,
// grounded on drsaluml-mu-bmd-to-webp/internal/config.Config.Resolve's
// "CLI flags take priority when non-zero" merge pattern.
type Flags struct {
	Width, Height int
	MaxIter       int
	Driver        string
	Oversampling  int
	Workers       int
	Colorize      string
	PaletteMode   string
}

// Resolve fills in any empty/zero FractalRecord fields with auto-detected
// defaults, then applies non-zero CLI flags on top. CLI flags win.
func (r *FractalRecord) Resolve(flags Flags) {
	if r.Kind == "" {
		r.Kind = "mandelbrot"
	}
	if r.MaxIter <= 0 {
		r.MaxIter = 1000
	}
	if r.SizeRe <= 0 {
		r.SizeRe = 3
	}
	if r.SizeIm <= 0 {
		r.SizeIm = 3
	}
	if r.Colorize == "" {
		r.Colorize = "iterations"
	}
	if r.PaletteMode == "" {
		r.PaletteMode = "linear"
	}
	if r.Palette.Kind == "" {
		r.Palette.Kind = "linear"
	}
	if r.Palette.N <= 0 {
		r.Palette.N = 256
	}
	if r.Oversampling <= 0 {
		r.Oversampling = 1
	}
	if r.Driver == "" {
		r.Driver = "vectorized"
	}
	if r.Width <= 0 {
		r.Width = 1024
	}
	if r.Height <= 0 {
		r.Height = 768
	}
	if r.Light.Opacity == 0 && r.Light.Ambient == 0 && r.Light.Diffuse == 0 {
		r.Light = LightRecord{
			AngleDeg: 45, ElevationDeg: 45, Opacity: 0.75,
			Ambient: 0.2, Diffuse: 0.5, Specular: 0.5, Shininess: 20, Gamma: 1.0,
		}
	}
	if r.Light.Gamma == 0 {
		r.Light.Gamma = 1.0
	}

	if flags.Width > 0 {
		r.Width = flags.Width
	}
	if flags.Height > 0 {
		r.Height = flags.Height
	}
	if flags.MaxIter > 0 {
		r.MaxIter = flags.MaxIter
	}
	if flags.Driver != "" {
		r.Driver = flags.Driver
	}
	if flags.Oversampling > 0 {
		r.Oversampling = flags.Oversampling
	}
	if flags.Colorize != "" {
		r.Colorize = flags.Colorize
	}
	if flags.PaletteMode != "" {
		r.PaletteMode = flags.PaletteMode
	}
}

// ResolveWorkers returns flags.Workers if set, else runtime.NumCPU().
func ResolveWorkers(flags Flags) int {
	if flags.Workers > 0 {
		return flags.Workers
	}
	return runtime.NumCPU()
}
