// Package compositor maps iteration-kernel output to a final RGB pixel
// using a palette, colorize/palette mode, shading and stripe/step
// overlays (spec.md §4.4).
package compositor

import (
	"math"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/kernel"
	"github.com/whalelogic/fractal/internal/shading"
)

// Params bundles the compositor's per-render-settings configuration
// (spec §4.4's color_par plus the fractal's colorize/palette mode/options/light).
type Params struct {
	Colorize    kernel.Colorize
	PaletteMode kernel.PaletteMode
	Options     kernel.Options
	Light       shading.Light

	StripeS     float64
	StripeSigma float64
	StepS       float64
	NCycle      float64 // continuous-phase cycle count for stripe/step and Modulo's integer period
	Diag        float64 // |size|, for distance normalization
	MaxIter     float64
}

// Composite maps a kernel result to a final quantized pixel.
func Composite(r kernel.Result, pal colorspace.Palette, p Params) colorspace.RGB8 {
	if r.InsideColor != nil {
		return colorspace.RGB{R: r.InsideColor[0], G: r.InsideColor[1], B: r.InsideColor[2]}.Quantize()
	}
	if !r.Escaped {
		return pal.Sentinel().Quantize()
	}

	opts := p.Options.Resolved()

	var normal complex128
	if opts.Has(kernel.OptSimple3D) || opts.Has(kernel.OptBlinnPhong3D) {
		normal = r.Z / r.Dz
	}

	bright := 1.0
	switch {
	case opts.Has(kernel.OptBlinnPhong3D):
		bright = shading.BlinnPhong3D(normal, p.Light)
	case opts.Has(kernel.OptSimple3D):
		bright = shading.Simple3D(normal, p.Light)
	}

	var color colorspace.RGB
	if p.StripeS > 0 || p.StepS > 0 {
		color = stripeStepShade(r, pal, p, bright)
	} else {
		color = mapScalar(r, pal, p, bright)
	}

	if p.Light.Gamma != 1.0 {
		color = color.Pow(1 / p.Light.Gamma)
	}
	return color.Quantize()
}

// clampIdx clamps idx to [0, maxIdx].
func clampIdx(idx, maxIdx int) int {
	if idx < 0 {
		return 0
	}
	if idx > maxIdx {
		return maxIdx
	}
	return idx
}

func mapScalar(r kernel.Result, pal colorspace.Palette, p Params, bright float64) colorspace.RGB {
	L := pal.Len()

	switch p.Colorize {
	case kernel.ColorizeIterations:
		switch p.PaletteMode {
		case kernel.PaletteLinear:
			idx := int(r.ISmooth / p.MaxIter * float64(L-1))
			return pal[clampIdx(idx, L-2)].Scale(bright)
		case kernel.PaletteModulo:
			idx := int(float64(L-1) * r.ISmooth / p.MaxIter)
			if p.NCycle > 0 {
				idx = idx % int(p.NCycle)
			}
			return pal[clampIdx(idx, L-2)].Scale(bright)
		case kernel.PaletteHue:
			return colorspace.HSBToRGB(pal[0].R, pal[0].G, bright)
		case kernel.PaletteHueDyn:
			h := math.Mod(math.Pow(r.ISmooth*360, 1.5), 360)
			return colorspace.HSBToRGB(h/360, 1, bright)
		case kernel.PaletteLchDyn:
			v := 1 - math.Pow(math.Cos(math.Pi*r.ISmooth), 2)
			h := math.Mod(math.Pow(360*r.ISmooth, 1.5), 360)
			return colorspace.LCh(75-75*v, 28+75-75*v, h).Scale(bright)
		}
	case kernel.ColorizeDistance:
		idx := int(math.Tanh(r.Distance/p.Diag) * float64(L-1))
		return pal[clampIdx(idx, L-2)].Scale(bright)
	case kernel.ColorizePotential:
		idx := int(float64(L-1) * r.Potential / p.MaxIter)
		return pal[clampIdx(idx, L-2)].Scale(bright)
	}
	return pal[0].Scale(bright)
}

// stripeStepShade implements spec §4.4 step 3: the stripe/step overlay
// pipeline, grounded on original_source/src/fractal.py's shading().
func stripeStepShade(r kernel.Result, pal colorspace.Palette, p Params, bright float64) colorspace.RGB {
	L := pal.Len()

	ncycle := p.NCycle
	if ncycle <= 0 {
		ncycle = 1
	}
	u := math.Mod(math.Sqrt(r.ISmooth), ncycle) / ncycle
	palIdx := int(math.Round(u * float64(L-2)))

	dPrime := -math.Log(r.Distance/p.Diag) / 12
	dPrime = 1 / (1 + math.Exp(-10*(2*dPrime-1)/2))

	nshader := 0
	shader := 0.0

	if r.StripeA > 0 {
		nshader++
		shader += r.StripeA
	}

	if p.StepS > 0 {
		step := 1 / p.StepS
		palIdx = int(math.Round((u - math.Mod(u, step)) * float64(L-2)))

		x := math.Mod(u, step) / step
		lightMajor := 6 * (1 - math.Pow(x, 5) - math.Pow(1-x, 100)) / 10

		step2 := step / 8
		x2 := math.Mod(u, step2) / step2
		lightMinor := 6 * (1 - math.Pow(x2, 5) - math.Pow(1-x2, 30)) / 10

		lightStep := colorspace.HardLight(lightMinor, lightMajor)
		nshader++
		shader += lightStep
	}

	if nshader > 0 {
		shader /= float64(nshader)
		bright = colorspace.HardLight(bright, shader)*(1-dPrime) + dPrime*bright
	}

	color := pal[clampIdx(palIdx, L-2)]
	return colorspace.HardLightRGB(color, bright)
}
