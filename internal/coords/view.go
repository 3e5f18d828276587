// Package coords implements the coordinate model mapping a pixel grid
// onto an axis-aligned rectangle of the complex plane.
package coords

// View is the axis-aligned rectangle of the complex plane being
// rendered. Invariant: Size.Re > 0 && Size.Im > 0.
type View struct {
	Corner complex128
	Size   complex128
}

// NewView validates corner/size and returns a View or a descriptive error.
func NewView(corner, size complex128) (View, error) {
	if real(size) <= 0 || imag(size) <= 0 {
		return View{}, errInvalidSize
	}
	return View{Corner: corner, Size: size}, nil
}

// MidY returns the vertical midpoint of the view.
func (v View) MidY() float64 {
	return imag(v.Corner) + imag(v.Size)/2
}

// Dx returns the pixel pitch in the real axis for an image of the given width.
func (v View) Dx(width int) float64 {
	return real(v.Size) / float64(width-1)
}

// Dy returns the pixel pitch in the imaginary axis for an image of the given height.
func (v View) Dy(height int) float64 {
	return imag(v.Size) / float64(height-1)
}

// MapXY maps a pixel coordinate to the corresponding point on the complex plane.
func (v View) MapXY(x, y, width, height int) complex128 {
	return complex(real(v.Corner)+float64(x)*v.Dx(width), imag(v.Corner)+float64(y)*v.Dy(height))
}

// MapWH maps a pixel-space width/height to a complex-plane width/height,
// i.e. the size a w×h pixel rectangle occupies under this view.
func (v View) MapWH(w, h, width, height int) complex128 {
	return complex(v.Dx(width)*float64(w), v.Dy(height)*float64(h))
}

// AdjustAspectRatio enlarges or shrinks Size.Im symmetrically around the
// view's existing mid-y so that Size.Re/Size.Im matches width/height.
// It returns the (possibly) adjusted view; MidY is preserved exactly.
func (v View) AdjustAspectRatio(width, height int) View {
	imageRatio := float64(width) / float64(height)
	fractalRatio := real(v.Size) / imag(v.Size)
	if imageRatio == fractalRatio {
		return v
	}

	newHeight := real(v.Size) / imageRatio
	newCornerIm := imag(v.Corner) + (imag(v.Size)-newHeight)/2
	return View{
		Corner: complex(real(v.Corner), newCornerIm),
		Size:   complex(real(v.Size), newHeight),
	}
}

// ZoomArea returns the view cropped to the pixel rectangle (x1,y1)-(x2,y2)
// inclusive, within an image of the given width/height.
func (v View) ZoomArea(x1, y1, x2, y2, width, height int) View {
	size := v.MapWH(x2-x1+1, y2-y1+1, width, height)
	corner := v.MapXY(x1, y1, width, height)
	return View{Corner: corner, Size: size}
}

// ZoomPercent zooms the view in (pct>100) or out (pct<100) around an optional
// pixel center (cx,cy); a center of (0,0) centers on the image midpoint.
// A no-op is returned unchanged for pct==100 or pct<1, matching the
// original application's zoom() guard.
func (v View) ZoomPercent(pct float64, width, height int, cx, cy int) View {
	if pct == 100 || pct < 1 {
		return v
	}

	w := int(float64(width) * 100 / pct)
	h := int(float64(height) * 100 / pct)

	var x1, y1 int
	if cx > 0 {
		x1 = cx - w/2
	} else {
		x1 = (width - w) / 2
	}
	if cy > 0 {
		y1 = cy - h/2
	} else {
		y1 = (height - h) / 2
	}

	size := v.MapWH(w, h, width, height)
	corner := v.MapXY(x1, y1, width, height)
	return View{Corner: corner, Size: size}
}

// Grid is the H×W array of complex points covered by a view, computed
// once per render via BuildGrid. Row-major: Grid[y*W+x] = corner + (x*dx + i*y*dy).
type Grid struct {
	Width, Height int
	Points        []complex128
}

// At returns the grid point at pixel (x,y).
func (g Grid) At(x, y int) complex128 {
	return g.Points[y*g.Width+x]
}

// BuildGrid computes the grid for a view over a width×height image.
func BuildGrid(v View, width, height int) Grid {
	dx := v.Dx(width)
	dy := v.Dy(height)
	cx, cy := real(v.Corner), imag(v.Corner)

	pts := make([]complex128, width*height)
	for y := 0; y < height; y++ {
		im := cy + float64(y)*dy
		row := y * width
		for x := 0; x < width; x++ {
			pts[row+x] = complex(cx+float64(x)*dx, im)
		}
	}
	return Grid{Width: width, Height: height, Points: pts}
}
