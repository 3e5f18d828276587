package coords

import (
	"math"
	"testing"
)

func TestNewViewValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    complex128
		wantErr bool
	}{
		{"positive", complex(3, 3), false},
		{"zero real", complex(0, 3), true},
		{"zero imag", complex(3, 0), true},
		{"negative real", complex(-1, 3), true},
		{"negative imag", complex(3, -1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewView(0, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewView() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestMapXYCorners(t *testing.T) {
	v := View{Corner: complex(-2.25, -1.5), Size: complex(3, 3)}
	const w, h = 256, 256

	got := v.MapXY(0, 0, w, h)
	if got != v.Corner {
		t.Errorf("MapXY(0,0) = %v, want corner %v", got, v.Corner)
	}

	got = v.MapXY(w-1, h-1, w, h)
	want := v.Corner + v.Size
	if math.Abs(real(got)-real(want)) > 1e-12 || math.Abs(imag(got)-imag(want)) > 1e-12 {
		t.Errorf("MapXY(w-1,h-1) = %v, want %v", got, want)
	}
}

func TestGridExactRealAxis(t *testing.T) {
	v := View{Corner: complex(-2.25, -1.5), Size: complex(3, 3)}
	const w, h = 17, 13
	g := BuildGrid(v, w, h)
	dx := v.Dx(w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := real(v.Corner) + float64(x)*dx
			if got := real(g.At(x, y)); got != want {
				t.Fatalf("grid[%d,%d].re = %v, want %v exactly", y, x, got, want)
			}
		}
	}
}

func TestAdjustAspectRatioPreservesMidYAndRatio(t *testing.T) {
	v := View{Corner: complex(-2, -1), Size: complex(4, 1)}
	midBefore := v.MidY()

	v2 := v.AdjustAspectRatio(200, 100) // target ratio 2:1, fractal ratio currently 4:1
	gotRatio := real(v2.Size) / imag(v2.Size)
	wantRatio := 200.0 / 100.0
	if math.Abs(gotRatio-wantRatio) > 1e-9 {
		t.Errorf("aspect ratio = %v, want %v", gotRatio, wantRatio)
	}
	if math.Abs(v2.MidY()-midBefore) > 1e-12 {
		t.Errorf("mid-y changed: before=%v after=%v", midBefore, v2.MidY())
	}
}

func TestAdjustAspectRatioNoopWhenAlreadyMatching(t *testing.T) {
	v := View{Corner: complex(-2, -1), Size: complex(4, 2)}
	v2 := v.AdjustAspectRatio(200, 100)
	if v2 != v {
		t.Errorf("expected no-op, got %v", v2)
	}
}

func TestZoomPercentNoopGuard(t *testing.T) {
	v := View{Corner: complex(-2, -1), Size: complex(4, 2)}
	if got := v.ZoomPercent(100, 200, 100, 0, 0); got != v {
		t.Errorf("ZoomPercent(100) should be a no-op, got %v", got)
	}
	if got := v.ZoomPercent(0.5, 200, 100, 0, 0); got != v {
		t.Errorf("ZoomPercent(<1) should be a no-op, got %v", got)
	}
}

func TestZoomPercentShrinksView(t *testing.T) {
	v := View{Corner: complex(-2, -1), Size: complex(4, 2)}
	v2 := v.ZoomPercent(200, 200, 100, 0, 0)
	if real(v2.Size) >= real(v.Size) {
		t.Errorf("zooming in 200%% should shrink the view size, got %v from %v", v2.Size, v.Size)
	}
}
