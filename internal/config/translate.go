package config

import (
	"fmt"
	"strings"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/coords"
	"github.com/whalelogic/fractal/internal/kernel"
	"github.com/whalelogic/fractal/internal/render"
	"github.com/whalelogic/fractal/internal/shading"
)

// ToFractal builds the render.Fractal described by the record.
func (r FractalRecord) ToFractal() (render.Fractal, error) {
	switch strings.ToLower(r.Kind) {
	case "", "mandelbrot":
		return render.Mandelbrot(r.MaxIter), nil
	case "julia":
		return render.Julia(complex(r.SeedRe, r.SeedIm), r.MaxIter), nil
	default:
		return render.Fractal{}, fmt.Errorf("config: unknown fractal kind %q", r.Kind)
	}
}

// ToView builds the coords.View described by the record.
func (r FractalRecord) ToView() (coords.View, error) {
	return coords.NewView(complex(r.CornerRe, r.CornerIm), complex(r.SizeRe, r.SizeIm))
}

func parseColorize(s string) (kernel.Colorize, error) {
	switch strings.ToLower(s) {
	case "", "iterations":
		return kernel.ColorizeIterations, nil
	case "distance":
		return kernel.ColorizeDistance, nil
	case "potential":
		return kernel.ColorizePotential, nil
	default:
		return 0, fmt.Errorf("config: unknown colorize %q", s)
	}
}

func parsePaletteMode(s string) (kernel.PaletteMode, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return kernel.PaletteLinear, nil
	case "modulo":
		return kernel.PaletteModulo, nil
	case "hue":
		return kernel.PaletteHue, nil
	case "huedyn":
		return kernel.PaletteHueDyn, nil
	case "lchdyn":
		return kernel.PaletteLchDyn, nil
	default:
		return 0, fmt.Errorf("config: unknown palette_mode %q", s)
	}
}

func parseOptions(opts []string) (kernel.Options, error) {
	var out kernel.Options
	for _, o := range opts {
		switch strings.ToLower(o) {
		case "orbits":
			out |= kernel.OptOrbits
		case "insidedistance":
			out |= kernel.OptInsideDistance
		case "simple3d":
			out |= kernel.OptSimple3D
		case "blinnphong3d":
			out |= kernel.OptBlinnPhong3D
		default:
			return 0, fmt.Errorf("config: unknown option %q", o)
		}
	}
	return out, nil
}

func parseDriver(s string) (render.Driver, error) {
	switch strings.ToLower(s) {
	case "", "vectorized":
		return render.DriverVectorized, nil
	case "sqem-rec", "sqem-recursive":
		return render.DriverSQEMRecursive, nil
	case "sqem-linear", "sqem-lin":
		return render.DriverSQEMLinear, nil
	default:
		return 0, fmt.Errorf("config: unknown driver %q", s)
	}
}

func (l LightRecord) toLight() shading.Light {
	return shading.Light{
		AngleDeg:     l.AngleDeg,
		ElevationDeg: l.ElevationDeg,
		Opacity:      l.Opacity,
		Ambient:      l.Ambient,
		Diffuse:      l.Diffuse,
		Specular:     l.Specular,
		Shininess:    l.Shininess,
		Gamma:        l.Gamma,
	}
}

// ToSettings builds the render.Settings described by the record.
func (r FractalRecord) ToSettings(workers int) (render.Settings, error) {
	colorize, err := parseColorize(r.Colorize)
	if err != nil {
		return render.Settings{}, err
	}
	mode, err := parsePaletteMode(r.PaletteMode)
	if err != nil {
		return render.Settings{}, err
	}
	opts, err := parseOptions(r.Options)
	if err != nil {
		return render.Settings{}, err
	}
	driver, err := parseDriver(r.Driver)
	if err != nil {
		return render.Settings{}, err
	}

	return render.Settings{
		Colorize:     colorize,
		PaletteMode:  mode,
		Options:      opts,
		Stripes:      r.Stripes,
		StripeSigma:  r.StripeSigma,
		Steps:        r.Steps,
		NCycle:       r.NCycle,
		Light:        r.Light.toLight(),
		Oversampling: r.Oversampling,
		Driver:       driver,
		Workers:      workers,
	}, nil
}

// ToPalette builds the colorspace.Palette described by the palette record.
func (p PaletteRecord) ToPalette() (colorspace.Palette, error) {
	n := p.N
	if n <= 0 {
		n = 256
	}

	var def *colorspace.RGB
	if p.Sentinel != nil {
		def = &colorspace.RGB{R: p.Sentinel[0], G: p.Sentinel[1], B: p.Sentinel[2]}
	}

	switch strings.ToLower(p.Kind) {
	case "", "linear":
		points := make([]colorspace.RGB, len(p.Points))
		for i, pt := range p.Points {
			points[i] = colorspace.RGB{R: pt[0], G: pt[1], B: pt[2]}
		}
		return colorspace.MakeLinear(n, points, def), nil
	case "sinus":
		return colorspace.MakeSinus(n, p.Theta, def), nil
	case "cosine":
		return colorspace.MakeCosine(n, p.Freq, p.Phase, def), nil
	case "sinuscosinus":
		return colorspace.MakeSinusCosinus(n, p.F1, p.F2, def), nil
	default:
		return nil, fmt.Errorf("config: unknown palette kind %q", p.Kind)
	}
}
