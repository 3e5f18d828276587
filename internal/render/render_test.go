package render

import (
	"sync/atomic"
	"testing"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/coords"
	"github.com/whalelogic/fractal/internal/kernel"
	"github.com/whalelogic/fractal/internal/shading"
)

func greyPalette(n int) colorspace.Palette {
	def := colorspace.RGB{R: 0, G: 0, B: 0}
	return colorspace.MakeLinear(n, []colorspace.RGB{
		{R: 80.0 / 255, G: 80.0 / 255, B: 80.0 / 255},
		{R: 1, G: 1, B: 1},
	}, &def)
}

func mustView(t *testing.T, corner, size complex128) coords.View {
	t.Helper()
	v, err := coords.NewView(corner, size)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	return v
}

func pixelAt(r Result, x, y int) colorspace.RGB8 {
	off := (y*r.W + x) * 3
	return colorspace.RGB8{R: r.Image[off], G: r.Image[off+1], B: r.Image[off+2]}
}

// S1: full Mandelbrot, grey palette, small resolution for test speed.
func s1Settings() (Fractal, coords.View, colorspace.Palette, Settings) {
	f := Mandelbrot(100)
	v := coords.View{Corner: complex(-2.25, -1.5), Size: complex(3, 3)}
	pal := greyPalette(100)
	s := Settings{Colorize: kernel.ColorizeIterations, PaletteMode: kernel.PaletteLinear, Oversampling: 1}
	return f, v, pal, s
}

func TestS1CenterInteriorEdgeEscape(t *testing.T) {
	f, v, pal, s := s1Settings()
	rn := NewRenderer(2)
	res, err := rn.Render(f, v, pal, s, 64, 64, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	center := pixelAt(res, 32, 32)
	sentinel := pal.Sentinel().Quantize()
	if center != sentinel {
		t.Errorf("center pixel = %v, want sentinel %v (inside set)", center, sentinel)
	}
	edge := pixelAt(res, 0, 32)
	if edge == sentinel {
		t.Errorf("left-edge pixel unexpectedly matches sentinel (should have escaped)")
	}
}

func TestS1VerticalSymmetry(t *testing.T) {
	f, v, pal, s := s1Settings()
	rn := NewRenderer(2)
	res, err := rn.Render(f, v, pal, s, 64, 64, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for x := 0; x < res.W; x++ {
		a := pixelAt(res, x, 10)
		b := pixelAt(res, x, res.H-1-10)
		if absDiff(a.R, b.R) > 1 || absDiff(a.G, b.G) > 1 || absDiff(a.B, b.B) > 1 {
			t.Errorf("row symmetry broken at x=%d: %v vs %v", x, a, b)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// S3: Julia symmetry under (x,y) <-> (W-1-x, H-1-y).
func TestS3JuliaPointSymmetry(t *testing.T) {
	f := Julia(complex(-0.7269, 0.1889), 200)
	v := mustView(t, complex(-1.5, -1.5), complex(3, 3))
	pal := greyPalette(80)
	s := Settings{Colorize: kernel.ColorizeIterations, PaletteMode: kernel.PaletteLinear, Oversampling: 1}
	rn := NewRenderer(2)
	res, err := rn.Render(f, v, pal, s, 48, 48, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for y := 0; y < res.H; y++ {
		for x := 0; x < res.W; x++ {
			a := pixelAt(res, x, y)
			b := pixelAt(res, res.W-1-x, res.H-1-y)
			if absDiff(a.R, b.R) > 1 || absDiff(a.G, b.G) > 1 || absDiff(a.B, b.B) > 1 {
				t.Fatalf("point symmetry broken at (%d,%d): %v vs %v", x, y, a, b)
			}
		}
	}
}

// S4: all three drivers must agree pixel-for-pixel on the same scene.
func TestS4DriverAgreement(t *testing.T) {
	f, v, pal, base := s1Settings()
	rn := NewRenderer(3)

	drivers := []Driver{DriverVectorized, DriverSQEMRecursive, DriverSQEMLinear}
	var results []Result
	for _, d := range drivers {
		s := base
		s.Driver = d
		res, err := rn.Render(f, v, pal, s, 48, 48, nil, nil)
		if err != nil {
			t.Fatalf("Render(%v): %v", d, err)
		}
		results = append(results, res)
	}

	for i := 1; i < len(results); i++ {
		if len(results[i].Image) != len(results[0].Image) {
			t.Fatalf("driver %d buffer length mismatch", i)
		}
		for p := range results[0].Image {
			if results[0].Image[p] != results[i].Image[p] {
				t.Fatalf("driver %d diverges from vectorized reference at byte %d: %d vs %d",
					i, p, results[0].Image[p], results[i].Image[p])
			}
		}
	}
}

// S5: orbit-based interior coloring distinguishes the cardioid from the
// period-2 bulb, both non-sentinel.
func TestS5OrbitColoringInterior(t *testing.T) {
	f := Mandelbrot(1000)
	v := mustView(t, complex(-2.25, -1.5), complex(3, 3))
	pal := greyPalette(80)
	s := Settings{
		Colorize:    kernel.ColorizeIterations,
		PaletteMode: kernel.PaletteLinear,
		Options:     kernel.OptOrbits,
		Oversampling: 1,
	}
	rn := NewRenderer(2)

	width, height := 300, 200
	toPixel := func(c complex128) (int, int) {
		x := int((real(c) - real(v.Corner)) / real(v.Size) * float64(width-1))
		y := int((imag(c) - imag(v.Corner)) / imag(v.Size) * float64(height-1))
		return x, height - 1 - y
	}

	res, err := rn.Render(f, v, pal, s, width, height, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	sentinel := pal.Sentinel().Quantize()
	x1, y1 := toPixel(complex(-0.5, 0))
	x2, y2 := toPixel(complex(-1, 0))
	c1 := pixelAt(res, x1, y1)
	c2 := pixelAt(res, x2, y2)
	if c1 == sentinel || c2 == sentinel {
		t.Errorf("orbit-colored interior pixels should not be the plain sentinel: %v, %v", c1, c2)
	}
	if c1 == c2 {
		t.Errorf("cardioid and period-2 bulb should have different orbit colors, got %v for both", c1)
	}
}

// S6: cancellation yields a partial result with the cancelled flag set,
// and never panics or deadlocks.
func TestS6CancellationYieldsPartialResult(t *testing.T) {
	f := Mandelbrot(500)
	v := mustView(t, complex(-2.25, -1.5), complex(3, 3))
	pal := greyPalette(100)
	s := Settings{Colorize: kernel.ColorizeIterations, PaletteMode: kernel.PaletteLinear, Oversampling: 1}
	rn := NewRenderer(1)

	var cancel atomic.Bool
	var rows int64
	onStatus := func(st Status) {
		if atomic.AddInt64(&rows, 1) == 2 {
			cancel.Store(true)
		}
	}

	res, err := rn.Render(f, v, pal, s, 64, 64, onStatus, &cancel)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.Cancelled {
		t.Errorf("expected Cancelled=true once cancel flag is set")
	}
	if res.PixelsDone <= 0 || res.PixelsDone >= res.W*res.H {
		t.Errorf("expected a partial pixel count, got %d of %d", res.PixelsDone, res.W*res.H)
	}
}

func TestOversamplingOneIsExactPassthrough(t *testing.T) {
	f, v, pal, base := s1Settings()
	rn := NewRenderer(2)

	s1 := base
	s1.Oversampling = 1
	r1, err := rn.Render(f, v, pal, s1, 40, 40, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Re-render identically; two oversampling==1 renders of the same
	// scene must match byte-for-byte (determinism, no averaging skew).
	r2, err := rn.Render(f, v, pal, s1, 40, 40, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := range r1.Image {
		if r1.Image[i] != r2.Image[i] {
			t.Fatalf("oversampling=1 render is non-deterministic at byte %d", i)
		}
	}

	// The o==1 box filter itself must return its input unchanged.
	passed := downsample(r1.Image, 40, 40, 1, 40, 40)
	for i := range r1.Image {
		if passed[i] != r1.Image[i] {
			t.Fatalf("downsample with o=1 changed byte %d: %d -> %d", i, r1.Image[i], passed[i])
		}
	}
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	f := Mandelbrot(100)
	v := mustView(t, complex(-2, -2), complex(4, 4))
	pal := greyPalette(100)
	s := Settings{}
	rn := NewRenderer(1)

	if _, err := rn.Render(f, v, pal, s, 0, 10, nil, nil); err == nil {
		t.Error("expected ConfigError for non-positive width")
	} else if _, ok := err.(*ConfigError); !ok {
		t.Errorf("expected *ConfigError, got %T", err)
	}

	shortPal := colorspace.Palette{{R: 0, G: 0, B: 0}}
	if _, err := rn.Render(f, v, shortPal, s, 10, 10, nil, nil); err == nil {
		t.Error("expected ConfigError for too-short palette")
	}
}

func TestBlinnPhongShadedRenderHasPlausibleBrightness(t *testing.T) {
	f := Julia(complex(-0.7269, 0.1889), 300)
	v := mustView(t, complex(-1.5, -1.5), complex(3, 3))
	pal := colorspace.MakeSinus(200, [3]float64{0.85, 0, 0.15}, nil)
	light := shading.DefaultLight()
	s := Settings{
		Colorize:    kernel.ColorizeDistance,
		PaletteMode: kernel.PaletteLinear,
		Options:     kernel.OptBlinnPhong3D,
		Stripes:     1,
		Light:       light,
		Oversampling: 1,
	}
	rn := NewRenderer(2)
	res, err := rn.Render(f, v, pal, s, 64, 64, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var sum, n float64
	for i := 0; i < len(res.Image); i += 3 {
		sum += (float64(res.Image[i]) + float64(res.Image[i+1]) + float64(res.Image[i+2])) / 3 / 255
		n++
	}
	mean := sum / n
	if mean < 0.05 || mean > 0.95 {
		t.Errorf("mean brightness = %v, want a plausible mid-range value", mean)
	}
}
