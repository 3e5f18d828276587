// Command fractal renders an escape-time Mandelbrot or Julia fractal to
// a WebP (or PNG) image, driven either by flags or a JSON preset file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/config"
	"github.com/whalelogic/fractal/internal/presets"
	"github.com/whalelogic/fractal/internal/render"
)

func main() {
	preset := flag.String("preset", "", "path to a JSON preset file ({application, fractal})")
	outfile := flag.String("outfile", "fractal.webp", "output image filename")
	format := flag.String("format", "webp", "output format: webp or png")

	kind := flag.String("kind", "mandelbrot", "fractal kind: mandelbrot or julia")
	seedRe := flag.Float64("seed-re", -0.7269, "julia seed real part")
	seedIm := flag.Float64("seed-im", 0.1889, "julia seed imaginary part")
	cornerRe := flag.Float64("corner-re", -2.25, "view corner real part")
	cornerIm := flag.Float64("corner-im", -1.5, "view corner imaginary part")
	sizeRe := flag.Float64("size-re", 3, "view size real part")
	sizeIm := flag.Float64("size-im", 3, "view size imaginary part")

	width := flag.Int("width", 0, "output image width in pixels (0: use preset or default)")
	height := flag.Int("height", 0, "output image height in pixels (0: use preset or default)")
	maxIter := flag.Int("maxiter", 0, "maximum iteration count (0: use preset or default)")
	driver := flag.String("driver", "", "vectorized | sqem-rec | sqem-linear (empty: use preset or default)")
	oversampling := flag.Int("oversampling", 0, "1..3 (0: use preset or default)")
	workers := flag.Int("workers", 0, "worker goroutine count (0: runtime.NumCPU())")
	colorize := flag.String("colorize", "", "iterations | distance | potential (empty: use preset or default)")
	paletteMode := flag.String("palette-mode", "", "linear | modulo | hue | huedyn | lchdyn (empty: use preset or default)")

	namedPalette := flag.String("named-palette", "", "use a catalog palette instead of the preset/default linear one (see -list-palettes)")
	listPalettes := flag.Bool("list-palettes", false, "print the named-palette catalog and exit")

	progress := flag.Bool("progress", true, "print progress to stderr")
	debug := flag.Bool("debug", false, "log the resolved calc parameters to stderr before rendering")
	previewFile := flag.String("preview-file", "", "also write a downscaled PNG preview (thumbnail) alongside the main output")
	previewWidth := flag.Int("preview-width", 256, "preview thumbnail width in pixels")
	flag.Parse()

	if *listPalettes {
		for _, name := range presets.Names() {
			fmt.Println(name)
		}
		return
	}

	var rec config.PresetRecord
	if *preset != "" {
		loaded, err := config.Load(*preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
			os.Exit(1)
		}
		rec = loaded
	} else {
		rec.Fractal = config.FractalRecord{
			Kind:     *kind,
			SeedRe:   *seedRe,
			SeedIm:   *seedIm,
			CornerRe: *cornerRe,
			CornerIm: *cornerIm,
			SizeRe:   *sizeRe,
			SizeIm:   *sizeIm,
			Palette:  config.PaletteRecord{Kind: "linear", N: 256, Points: [][3]float64{{80.0 / 255, 80.0 / 255, 80.0 / 255}, {1, 1, 1}}},
		}
	}

	flags := config.Flags{
		Width: *width, Height: *height, MaxIter: *maxIter,
		Driver: *driver, Oversampling: *oversampling, Workers: *workers,
		Colorize: *colorize, PaletteMode: *paletteMode,
	}
	rec.Fractal.Resolve(flags)

	fractal, err := rec.Fractal.ToFractal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
		os.Exit(2)
	}
	view, err := rec.Fractal.ToView()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
		os.Exit(2)
	}
	settings, err := rec.Fractal.ToSettings(config.ResolveWorkers(flags))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
		os.Exit(2)
	}
	var pal colorspace.Palette
	if *namedPalette != "" {
		p, ok := presets.Named(*namedPalette, rec.Fractal.Palette.N)
		if !ok {
			fmt.Fprintf(os.Stderr, "fractal: unknown named palette %q (see -list-palettes)\n", *namedPalette)
			os.Exit(2)
		}
		pal = p
	} else {
		pal, err = rec.Fractal.Palette.ToPalette()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
			os.Exit(2)
		}
	}

	rn := render.NewRenderer(settings.Workers)
	if *debug {
		rn.Debug = log.New(os.Stderr, "fractal: ", log.LstdFlags)
	}

	var cancel atomic.Bool
	var lastPrint time.Time
	onStatus := func(st render.Status) {
		if !*progress {
			return
		}
		if time.Since(lastPrint) < 200*time.Millisecond && st.Drawing {
			return
		}
		lastPrint = time.Now()
		fmt.Fprintf(os.Stderr, "\rrendering... %5.1f%%", st.Progress*100)
	}

	res, err := rn.Render(fractal, view, pal, settings, rec.Fractal.Width, rec.Fractal.Height, onStatus, &cancel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nfractal: render failed: %v\n", err)
		os.Exit(1)
	}
	if *progress {
		fmt.Fprintln(os.Stderr)
	}
	if res.Cancelled {
		fmt.Fprintf(os.Stderr, "fractal: render cancelled (%d/%d pixels done)\n", res.PixelsDone, res.W*res.H)
	}

	img := toNRGBA(res)

	f, err := os.Create(*outfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: failed to create %s: %v\n", *outfile, err)
		os.Exit(1)
	}
	defer f.Close()

	switch *format {
	case "png":
		err = png.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: failed to encode %s: %v\n", *format, err)
		os.Exit(1)
	}

	if *previewFile != "" {
		if err := writePreview(*previewFile, img, *previewWidth); err != nil {
			fmt.Fprintf(os.Stderr, "fractal: preview: %v\n", err)
		}
	}

	fmt.Printf("Saved %s (%dx%d)\n", *outfile, res.W, res.H)
}

// writePreview downscales img to the given width (preserving aspect
// ratio) with a high-quality resampler and writes it as a PNG. This is
// a CLI-only convenience; the renderer's own oversampling/downsampling
// path (internal/render) uses a plain box filter and is unaffected.
func writePreview(path string, img *image.NRGBA, width int) error {
	if width <= 0 {
		width = 256
	}
	srcBounds := img.Bounds()
	height := srcBounds.Dy() * width / srcBounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, srcBounds, draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// toNRGBA copies a render.Result's tightly packed RGB buffer into a new
// opaque image.NRGBA, one pixel at a time.
func toNRGBA(res render.Result) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, res.W, res.H))
	for y := 0; y < res.H; y++ {
		srcRow := y * res.W * 3
		dstRow := y * img.Stride
		for x := 0; x < res.W; x++ {
			s := srcRow + x*3
			d := dstRow + x*4
			img.Pix[d] = res.Image[s]
			img.Pix[d+1] = res.Image[s+1]
			img.Pix[d+2] = res.Image[s+2]
			img.Pix[d+3] = 0xff
		}
	}
	return img
}
