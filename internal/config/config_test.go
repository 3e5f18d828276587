package config

import (
	"encoding/json"
	"testing"
)

func TestResolveAppliesDefaultsThenFlags(t *testing.T) {
	var rec FractalRecord
	rec.Resolve(Flags{})

	if rec.Kind != "mandelbrot" {
		t.Errorf("default kind = %q, want mandelbrot", rec.Kind)
	}
	if rec.Width != 1024 || rec.Height != 768 {
		t.Errorf("default size = %dx%d, want 1024x768", rec.Width, rec.Height)
	}
	if rec.Light.Gamma != 1.0 {
		t.Errorf("default gamma = %v, want 1.0", rec.Light.Gamma)
	}

	rec2 := FractalRecord{}
	rec2.Resolve(Flags{Width: 200, Height: 100, Driver: "sqem-rec"})
	if rec2.Width != 200 || rec2.Height != 100 {
		t.Errorf("flag override size = %dx%d, want 200x100", rec2.Width, rec2.Height)
	}
	if rec2.Driver != "sqem-rec" {
		t.Errorf("flag override driver = %q, want sqem-rec", rec2.Driver)
	}
}

func TestResolvePreservesExplicitRecordValues(t *testing.T) {
	rec := FractalRecord{MaxIter: 5000, Width: 640, Height: 480}
	rec.Resolve(Flags{})
	if rec.MaxIter != 5000 {
		t.Errorf("explicit max_iter overwritten: got %d, want 5000", rec.MaxIter)
	}
	if rec.Width != 640 || rec.Height != 480 {
		t.Errorf("explicit size overwritten: got %dx%d", rec.Width, rec.Height)
	}
}

func TestToFractalMandelbrotAndJulia(t *testing.T) {
	m := FractalRecord{Kind: "mandelbrot", MaxIter: 100}
	f, err := m.ToFractal()
	if err != nil {
		t.Fatalf("ToFractal: %v", err)
	}
	if f.Kind != 0 { // KindMandelbrot
		t.Errorf("expected KindMandelbrot, got %v", f.Kind)
	}

	j := FractalRecord{Kind: "julia", SeedRe: -0.7269, SeedIm: 0.1889, MaxIter: 100}
	f2, err := j.ToFractal()
	if err != nil {
		t.Fatalf("ToFractal: %v", err)
	}
	if f2.Seed != complex(-0.7269, 0.1889) {
		t.Errorf("julia seed = %v, want -0.7269+0.1889i", f2.Seed)
	}
}

func TestToFractalRejectsUnknownKind(t *testing.T) {
	r := FractalRecord{Kind: "burningship"}
	if _, err := r.ToFractal(); err == nil {
		t.Error("expected error for unknown fractal kind")
	}
}

func TestToViewValidatesSize(t *testing.T) {
	r := FractalRecord{CornerRe: -2, CornerIm: -1, SizeRe: 0, SizeIm: 2}
	if _, err := r.ToView(); err == nil {
		t.Error("expected error for non-positive size_re")
	}
}

func TestToSettingsParsesOptions(t *testing.T) {
	r := FractalRecord{Colorize: "distance", PaletteMode: "modulo", Options: []string{"orbits", "blinnphong3d"}}
	s, err := r.ToSettings(4)
	if err != nil {
		t.Fatalf("ToSettings: %v", err)
	}
	if s.Workers != 4 {
		t.Errorf("workers = %d, want 4", s.Workers)
	}
	if !s.Options.Has(1) { // OptOrbits == 1
		t.Errorf("expected OptOrbits set")
	}
}

func TestToSettingsRejectsUnknownOption(t *testing.T) {
	r := FractalRecord{Options: []string{"bogus"}}
	if _, err := r.ToSettings(1); err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestToPaletteLinearAndSinus(t *testing.T) {
	lin := PaletteRecord{Kind: "linear", N: 10, Points: [][3]float64{{0, 0, 0}, {1, 1, 1}}}
	pal, err := lin.ToPalette()
	if err != nil {
		t.Fatalf("ToPalette: %v", err)
	}
	if pal.Len() != 10 {
		t.Errorf("palette len = %d, want 10", pal.Len())
	}

	sin := PaletteRecord{Kind: "sinus", N: 50, Theta: [3]float64{0.85, 0, 0.15}}
	if _, err := sin.ToPalette(); err != nil {
		t.Fatalf("ToPalette(sinus): %v", err)
	}
}

func TestPresetRecordRoundTripsApplicationAsOpaqueJSON(t *testing.T) {
	raw := `{"application":{"window_w":800,"recent":["a.json"]},"fractal":{"kind":"mandelbrot","max_iter":500,"colorize":"iterations","palette_mode":"linear","width":10,"height":10,"palette":{"kind":"linear","n":10}}}`

	var rec PresetRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.Fractal.MaxIter != 500 {
		t.Errorf("max_iter = %d, want 500", rec.Fractal.MaxIter)
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTrip map[string]interface{}
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("Unmarshal roundtrip: %v", err)
	}
	app, ok := roundTrip["application"].(map[string]interface{})
	if !ok {
		t.Fatalf("application not preserved as an object: %#v", roundTrip["application"])
	}
	if app["window_w"] != float64(800) {
		t.Errorf("application.window_w = %v, want 800", app["window_w"])
	}
}
