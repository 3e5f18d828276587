package render

import (
	"sync"
	"sync/atomic"

	"github.com/whalelogic/fractal/internal/colorspace"
	"github.com/whalelogic/fractal/internal/compositor"
	"github.com/whalelogic/fractal/internal/coords"
	"github.com/whalelogic/fractal/internal/kernel"
)

// renderCtx holds everything a driver needs to fill the oversampled
// buffer: the pure per-pixel compute path plus the shared mutable state
// (buffer, cancellation flag, progress counters) that every driver reads
// and writes through the same small set of helpers below.
type renderCtx struct {
	fractal Fractal
	grid    coords.Grid
	pal     colorspace.Palette
	kp      kernel.Params
	cp      compositor.Params

	oWidth, oHeight int
	buf             []byte // oHeight*oWidth*3, row 0 = bottom of view

	maxLen, minLen int

	workers int
	cancel  *atomic.Bool

	scratchPool sync.Pool

	pixelsDone int64
	totalUnits int64

	onStatus func(Status)
}

func newRenderCtx(fractal Fractal, grid coords.Grid, pal colorspace.Palette, kp kernel.Params, cp compositor.Params, oWidth, oHeight, workers int, cancel *atomic.Bool, onStatus func(Status)) *renderCtx {
	ctx := &renderCtx{
		fractal: fractal,
		grid:    grid,
		pal:     pal,
		kp:      kp,
		cp:      cp,
		oWidth:  oWidth,
		oHeight: oHeight,
		buf:     make([]byte, oWidth*oHeight*3),
		workers: workers,
		cancel:  cancel,
		totalUnits: int64(oWidth) * int64(oHeight),
		onStatus: onStatus,
	}
	minSide := oWidth
	if oHeight < minSide {
		minSide = oHeight
	}
	ctx.maxLen = minSide / 2
	if ctx.maxLen < 16 {
		ctx.maxLen = 16
	}
	ctx.minLen = minSide / 8
	if ctx.minLen < 16 {
		ctx.minLen = 16
	}
	if ctx.minLen > ctx.maxLen {
		ctx.minLen = ctx.maxLen
	}

	ctx.scratchPool.New = func() interface{} {
		return kernel.NewScratch(ctx.kp.MaxIter)
	}
	return ctx
}

func (c *renderCtx) isCancelled() bool {
	return c.cancel != nil && c.cancel.Load()
}

func (c *renderCtx) reportStatus() {
	if c.onStatus == nil {
		return
	}
	done := atomic.LoadInt64(&c.pixelsDone)
	progress := 1.0
	if c.totalUnits > 0 {
		progress = float64(done) / float64(c.totalUnits)
	}
	c.onStatus(Status{Drawing: true, Progress: progress})
}

// pixelColor computes the final quantized color for grid point (x,y).
func (c *renderCtx) pixelColor(x, y int) colorspace.RGB8 {
	scratch := c.scratchPool.Get().(*kernel.Scratch)
	defer c.scratchPool.Put(scratch)

	var hist []complex128
	if c.kp.OrbitsOn {
		hist = scratch.Slice()
	}

	pt := c.grid.At(x, y)
	var r kernel.Result
	switch c.fractal.Kind {
	case KindJulia:
		r = kernel.Julia(pt, c.fractal.Seed, c.kp, hist)
	default:
		r = kernel.Mandelbrot(pt, c.kp, hist)
	}
	return compositor.Composite(r, c.pal, c.cp)
}

func (c *renderCtx) put(x, y int, rgb colorspace.RGB8) {
	off := (y*c.oWidth + x) * 3
	c.buf[off] = rgb.R
	c.buf[off+1] = rgb.G
	c.buf[off+2] = rgb.B
}

func (c *renderCtx) get(x, y int) colorspace.RGB8 {
	off := (y*c.oWidth + x) * 3
	return colorspace.RGB8{R: c.buf[off], G: c.buf[off+1], B: c.buf[off+2]}
}

// edge describes the color sampled along a straight run of pixels, and
// whether every pixel on the run shared that exact color.
type edge struct {
	c      colorspace.RGB8
	unique bool
}

// computeLine computes and writes every pixel on the horizontal or
// vertical run from (x1,y1) to (x2,y2) inclusive, returning its edge
// summary. Exactly one of x1==x2, y1==y2 must hold.
func (c *renderCtx) computeLine(x1, y1, x2, y2 int) edge {
	if y1 == y2 {
		first := c.pixelColor(x1, y1)
		c.put(x1, y1, first)
		unique := true
		for x := x1 + 1; x <= x2; x++ {
			v := c.pixelColor(x, y1)
			c.put(x, y1, v)
			if v != first {
				unique = false
			}
		}
		atomic.AddInt64(&c.pixelsDone, int64(x2-x1+1))
		return edge{c: first, unique: unique}
	}
	first := c.pixelColor(x1, y1)
	c.put(x1, y1, first)
	unique := true
	for y := y1 + 1; y <= y2; y++ {
		v := c.pixelColor(x1, y)
		c.put(x1, y, v)
		if v != first {
			unique = false
		}
	}
	atomic.AddInt64(&c.pixelsDone, int64(y2-y1+1))
	return edge{c: first, unique: unique}
}

// getLineColor reads an already-painted horizontal or vertical run
// without recomputing it, used for the half-edges reused across a
// square-estimation split.
func (c *renderCtx) getLineColor(x1, y1, x2, y2 int) edge {
	if y1 == y2 {
		first := c.get(x1, y1)
		unique := true
		for x := x1 + 1; x <= x2; x++ {
			if c.get(x, y1) != first {
				unique = false
				break
			}
		}
		return edge{c: first, unique: unique}
	}
	first := c.get(x1, y1)
	unique := true
	for y := y1 + 1; y <= y2; y++ {
		if c.get(x1, y) != first {
			unique = false
			break
		}
	}
	return edge{c: first, unique: unique}
}

// fillRect writes a single solid color over the rectangle, a no-op for a
// degenerate (empty) range.
func (c *renderCtx) fillRect(x1, y1, x2, y2 int, color colorspace.RGB8) {
	if x2 < x1 || y2 < y1 {
		return
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.put(x, y, color)
		}
	}
	atomic.AddInt64(&c.pixelsDone, int64(x2-x1+1)*int64(y2-y1+1))
}

// vectorizedRegion computes and writes every pixel in the rectangle
// directly, a no-op for a degenerate (empty) range.
func (c *renderCtx) vectorizedRegion(x1, y1, x2, y2 int) {
	if x2 < x1 || y2 < y1 {
		return
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.put(x, y, c.pixelColor(x, y))
		}
	}
	atomic.AddInt64(&c.pixelsDone, int64(x2-x1+1)*int64(y2-y1+1))
}
