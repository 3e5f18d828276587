package colorspace

import "math"

// Palette is an ordered list of RGB colors sampled by the compositor.
// When built with a default/sentinel color, the final entry is that
// sentinel and content colors occupy indices [0, len-2]. Invariant:
// len(Palette) >= 2.
type Palette []RGB

// Len returns the number of palette entries, content plus sentinel.
func (p Palette) Len() int { return len(p) }

// Sentinel returns the trailing entry, reserved for points that did
// not escape (the "interior" color).
func (p Palette) Sentinel() RGB { return p[len(p)-1] }

// ContentLen returns the number of content (non-sentinel) entries. It is
// always len-1: the final entry is treated as the sentinel whether or not
// the palette was built with one.
func (p Palette) ContentLen() int { return len(p) - 1 }

// At returns the entry at idx, clamped to the content range [0, ContentLen()-1].
func (p Palette) At(idx int) RGB {
	n := p.ContentLen()
	if n <= 0 {
		n = len(p)
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return p[idx]
}

// Sample returns the color at continuous index t in [0,1], linearly
// interpolated between adjacent content entries. Sample(0) == p[0]
// and Sample(1) == p[ContentLen()-1] exactly (spec §8 invariant 8).
func (p Palette) Sample(t float64) RGB {
	n := p.ContentLen()
	if n <= 1 {
		return p[0]
	}
	if t <= 0 {
		return p[0]
	}
	if t >= 1 {
		return p[n-1]
	}
	pos := t * float64(n-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := p[i], p[i+1]
	return RGB{
		R: a.R + (b.R-a.R)*frac,
		G: a.G + (b.G-a.G)*frac,
		B: a.B + (b.B-a.B)*frac,
	}
}

func appendSentinel(colors []RGB, def *RGB) Palette {
	if def != nil {
		colors = append(colors, *def)
	}
	return Palette(colors)
}

// MakeLinear builds an n-entry palette by piecewise-linear interpolation
// between consecutive anchor colors in points, using equal-sized segments.
// An empty points list yields a 0→1 greyscale ramp; a single point yields
// a monochrome palette. If def is non-nil it is appended as the terminal
// sentinel (spec §4.1).
func MakeLinear(n int, points []RGB, def *RGB) Palette {
	if n < 2 {
		n = 2
	}
	switch len(points) {
	case 0:
		colors := make([]RGB, n)
		for i := 0; i < n; i++ {
			v := float64(i) / float64(n-1)
			colors[i] = RGB{R: v, G: v, B: v}
		}
		return appendSentinel(colors, def)
	case 1:
		colors := make([]RGB, n)
		for i := range colors {
			colors[i] = points[0]
		}
		return appendSentinel(colors, def)
	}

	segments := len(points) - 1
	colors := make([]RGB, n)
	for i := 0; i < n; i++ {
		// Position along the full anchor chain in [0, segments].
		pos := float64(i) / float64(n-1) * float64(segments)
		seg := int(pos)
		if seg >= segments {
			seg = segments - 1
		}
		frac := pos - float64(seg)
		a, b := points[seg], points[seg+1]
		colors[i] = RGB{
			R: a.R + (b.R-a.R)*frac,
			G: a.G + (b.G-a.G)*frac,
			B: a.B + (b.B-a.B)*frac,
		}
	}
	return appendSentinel(colors, def)
}

// MakeRGB builds an n-entry palette from two or three RGB stops, a
// convenience alias over MakeLinear for the common "start/mid/end" case.
func MakeRGB(n int, stops []RGB, def *RGB) Palette {
	return MakeLinear(n, stops, def)
}

// MakeSinus builds an n-entry palette where channel c of entry k is
// 0.5 + 0.5*sin(2π*(k/(n-1) + theta[c])), per spec §4.1.
func MakeSinus(n int, theta [3]float64, def *RGB) Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]RGB, n)
	for k := 0; k < n; k++ {
		t := float64(k) / float64(n-1)
		colors[k] = RGB{
			R: 0.5 + 0.5*math.Sin(2*math.Pi*(t+theta[0])),
			G: 0.5 + 0.5*math.Sin(2*math.Pi*(t+theta[1])),
			B: 0.5 + 0.5*math.Sin(2*math.Pi*(t+theta[2])),
		}
	}
	return appendSentinel(colors, def)
}

// MakeCosine builds an n-entry palette where channel c of entry k is
// 0.5 + 0.5*cos(2π*freq*(k/(n-1)) + phase[c]).
func MakeCosine(n int, freq float64, phase [3]float64, def *RGB) Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]RGB, n)
	for k := 0; k < n; k++ {
		t := float64(k) / float64(n-1)
		colors[k] = RGB{
			R: 0.5 + 0.5*math.Cos(2*math.Pi*freq*t+phase[0]),
			G: 0.5 + 0.5*math.Cos(2*math.Pi*freq*t+phase[1]),
			B: 0.5 + 0.5*math.Cos(2*math.Pi*freq*t+phase[2]),
		}
	}
	return appendSentinel(colors, def)
}

// MakeSinusCosinus builds an n-entry palette combining a linear red ramp
// with a cosine green channel (frequency f1) and a sine blue channel
// (frequency f2), grounded on original_source/src/colortable.py's
// CalcColor.mapSinusCosinus (which fixed these frequencies; here they
// are parameters).
func MakeSinusCosinus(n int, f1, f2 float64, def *RGB) Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]RGB, n)
	for k := 0; k < n; k++ {
		t := float64(k) / float64(n-1)
		colors[k] = RGB{
			R: t,
			G: 0.5 + 0.5*math.Cos(2*math.Pi*f1*t),
			B: 0.5 + 0.5*math.Sin(2*math.Pi*f2*t),
		}
	}
	return appendSentinel(colors, def)
}
