// Package render drives the adaptive fractal renderer: it turns a
// Fractal spec, a view of the complex plane and a Settings bundle into
// a finished RGB image, choosing among a fully vectorized driver and
// two square-estimation (SQEM) drivers that skip interior pixels when a
// region's border is provably uniform (spec.md §4.5).
package render

import (
	"log"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/compositor"
	"github.com/whalelogic/fractal/internal/coords"
	"github.com/whalelogic/fractal/internal/kernel"
)

// Renderer owns nothing but its worker-count default; it is safe to
// reuse across many Render calls and safe to share across goroutines
// since Render carries no mutable state on the receiver.
type Renderer struct {
	Workers int

	// Debug, when non-nil, receives a one-line dump of the resolved calc
	// parameters at the start of every Render call, the library
	// equivalent of the original drawer.py's "Calc parameters=" print.
	Debug *log.Logger
}

// NewRenderer returns a Renderer defaulting to runtime.NumCPU() workers.
func NewRenderer(workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Renderer{Workers: workers}
}

// Render fills a width×height image of the fractal over view, using pal
// and settings, and returns the finished (possibly partial, if cancel was
// set) result. onStatus and cancel may both be nil.
func (rn *Renderer) Render(fractal Fractal, view coords.View, pal colorspace.Palette, settings Settings, width, height int, onStatus func(Status), cancel *atomic.Bool) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, newConfigError("width and height must be positive")
	}
	if pal.Len() < 2 {
		return Result{}, newConfigError("palette must have at least two entries (content + sentinel)")
	}
	if real(view.Size) <= 0 || imag(view.Size) <= 0 {
		return Result{}, newConfigError("view size must be positive in both axes")
	}

	view = view.AdjustAspectRatio(width, height)

	oversampling := settings.oversampling()
	oWidth := width * oversampling
	oHeight := height * oversampling
	if int64(oWidth)*int64(oHeight) > maxPixelBudget {
		return Result{}, newResourceError("requested resolution and oversampling exceed the internal pixel budget")
	}

	opts := settings.Options.Resolved()
	orbitsOn := opts.Has(kernel.OptOrbits)
	anyShading := opts.Has(kernel.OptSimple3D) || opts.Has(kernel.OptBlinnPhong3D)
	distanceOn := settings.Colorize == kernel.ColorizeDistance || settings.Stripes > 0 || settings.Steps > 0

	maxIter := kernel.ResolveMaxIter(fractal.MaxIter, settings.Colorize, orbitsOn)
	bailout := kernel.ResolveBailout(settings.Colorize, settings.PaletteMode, settings.Options)

	light := settings.Light
	light.Prepare()

	kp := kernel.Params{
		MaxIter:     maxIter,
		Bailout:     bailout,
		OrbitsOn:    orbitsOn,
		StripeS:     float64(settings.Stripes),
		StripeSigma: settings.stripeSigma(),
		DistanceOn:  distanceOn,
		AnyShading:  anyShading,
	}

	cp := compositor.Params{
		Colorize:    settings.Colorize,
		PaletteMode: settings.PaletteMode,
		Options:     settings.Options,
		Light:       light,
		StripeS:     float64(settings.Stripes),
		StripeSigma: settings.stripeSigma(),
		StepS:       float64(settings.Steps),
		NCycle:      float64(settings.NCycle),
		Diag:        cmplxAbs(view.Size),
		MaxIter:     float64(maxIter),
	}

	fractal.MaxIter = maxIter

	if rn.Debug != nil {
		rn.Debug.Printf("calc parameters: kind=%v seed=%v max_iter=%d bailout=%v colorize=%v palette_mode=%v options=%v driver=%v oversampling=%d size=%dx%d",
			fractal.Kind, fractal.Seed, maxIter, bailout, settings.Colorize, settings.PaletteMode, opts, settings.Driver, oversampling, width, height)
	}

	grid := coords.BuildGrid(view, oWidth, oHeight)

	workers := rn.Workers
	if settings.Workers > 0 {
		workers = settings.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx := newRenderCtx(fractal, grid, pal, kp, cp, oWidth, oHeight, workers, cancel, onStatus)

	switch settings.Driver {
	case DriverSQEMRecursive:
		renderSQEMRecursive(ctx)
	case DriverSQEMLinear:
		renderSQEMLinear(ctx)
	default:
		renderVectorizedFull(ctx)
	}

	out := downsample(ctx.buf, oWidth, oHeight, oversampling, width, height)
	flipVertical(out, width, height)

	if onStatus != nil {
		onStatus(Status{Drawing: false, Progress: 1})
	}

	return Result{
		Image:      out,
		W:          width,
		H:          height,
		Cancelled:  ctx.isCancelled(),
		PixelsDone: int(atomic.LoadInt64(&ctx.pixelsDone)),
	}, nil
}

func cmplxAbs(z complex128) float64 {
	re, im := real(z), imag(z)
	return math.Sqrt(re*re + im*im)
}

// downsample box-filters an oWidth×oHeight buffer down to width×height,
// each output pixel the average of an o×o block. At o==1 this is an
// exact copy: summing a single byte and dividing by 1 introduces no
// rounding error (spec §8 invariant 7).
func downsample(src []byte, oWidth, oHeight, o, width, height int) []byte {
	out := make([]byte, width*height*3)
	n := o * o
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sr, sg, sb int
			for dy := 0; dy < o; dy++ {
				sy := y*o + dy
				base := sy * oWidth
				for dx := 0; dx < o; dx++ {
					sx := x*o + dx
					off := (base + sx) * 3
					sr += int(src[off])
					sg += int(src[off+1])
					sb += int(src[off+2])
				}
			}
			off := (y*width + x) * 3
			out[off] = byte((sr + n/2) / n)
			out[off+1] = byte((sg + n/2) / n)
			out[off+2] = byte((sb + n/2) / n)
		}
	}
	return out
}

// flipVertical reverses row order in place: the renderer fills row 0 as
// the bottom of the view, but image encoders expect row 0 at the top.
func flipVertical(buf []byte, width, height int) {
	stride := width * 3
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := y * stride
		bot := (height - 1 - y) * stride
		copy(tmp, buf[top:top+stride])
		copy(buf[top:top+stride], buf[bot:bot+stride])
		copy(buf[bot:bot+stride], tmp)
	}
}
