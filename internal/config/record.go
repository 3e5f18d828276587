// Package config decodes the persisted preset record an outer
// application would save (spec.md §6's "opaque configuration record")
// and resolves it, together with CLI flags, into the render package's
// own types. internal/render never imports this package: the mapping
// runs one way, config -> render.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PresetRecord is the top-level persisted document: two objects,
// `application` and `fractal`. The core never interprets `application`;
// it is kept as raw JSON and round-tripped on Save.
type PresetRecord struct {
	Application json.RawMessage `json:"application,omitempty"`
	Fractal     FractalRecord   `json:"fractal"`
}

// LightRecord mirrors shading.Light's human-unit fields for JSON.
type LightRecord struct {
	AngleDeg     float64 `json:"angle_deg"`
	ElevationDeg float64 `json:"elevation_deg"`
	Opacity      float64 `json:"opacity"`
	Ambient      float64 `json:"ambient"`
	Diffuse      float64 `json:"diffuse"`
	Specular     float64 `json:"specular"`
	Shininess    float64 `json:"shininess"`
	Gamma        float64 `json:"gamma"`
}

// PaletteRecord describes how to build a colorspace.Palette.
type PaletteRecord struct {
	Kind     string       `json:"kind"` // "linear" | "sinus" | "cosine" | "sinuscosinus"
	N        int          `json:"n"`
	Points   [][3]float64 `json:"points,omitempty"`   // for "linear"
	Theta    [3]float64   `json:"theta,omitempty"`    // for "sinus"
	Freq     float64      `json:"freq,omitempty"`     // for "cosine"
	Phase    [3]float64   `json:"phase,omitempty"`    // for "cosine"
	F1       float64      `json:"f1,omitempty"`       // for "sinuscosinus"
	F2       float64      `json:"f2,omitempty"`       // for "sinuscosinus"
	Sentinel *[3]float64  `json:"sentinel,omitempty"` // trailing interior color; nil means none
}

// FractalRecord is the `fractal` object: view, fractal kind/seed,
// colorization, stripe/step overlay, shading and output geometry.
type FractalRecord struct {
	Kind    string  `json:"kind"` // "mandelbrot" | "julia"
	SeedRe  float64 `json:"seed_re,omitempty"`
	SeedIm  float64 `json:"seed_im,omitempty"`
	MaxIter int     `json:"max_iter"`

	CornerRe float64 `json:"corner_re"`
	CornerIm float64 `json:"corner_im"`
	SizeRe   float64 `json:"size_re"`
	SizeIm   float64 `json:"size_im"`

	Colorize    string   `json:"colorize"`     // "iterations" | "distance" | "potential"
	PaletteMode string   `json:"palette_mode"` // "linear" | "modulo" | "hue" | "huedyn" | "lchdyn"
	Options     []string `json:"options,omitempty"` // "orbits" | "insidedistance" | "simple3d" | "blinnphong3d"

	Stripes     uint32  `json:"stripes,omitempty"`
	StripeSigma float64 `json:"stripe_sigma,omitempty"`
	Steps       uint32  `json:"steps,omitempty"`
	NCycle      uint32  `json:"ncycle,omitempty"`

	Light LightRecord `json:"light"`

	Palette PaletteRecord `json:"palette"`

	Oversampling int    `json:"oversampling,omitempty"`
	Driver       string `json:"driver,omitempty"` // "vectorized" | "sqem-rec" | "sqem-linear"

	Width  int `json:"width"`
	Height int `json:"height"`
}

// Load reads and decodes a preset record from path.
func Load(path string) (PresetRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PresetRecord{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var rec PresetRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return PresetRecord{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return rec, nil
}

// Save encodes rec as indented JSON and writes it to path.
func Save(path string, rec PresetRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
