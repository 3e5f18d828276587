package kernel

import (
	"math"

	"github.com/whalelogic/fractal/internal/colorspace"
)

// iterate is the fused escape-time loop shared by Mandelbrot and Julia:
// z starts at z0 and is updated by z <- z*z + add each step (spec §4.3).
// i runs 0..max_iter inclusive (max_iter+1 iterations total), matching
// original_source/src/julia.py's calculatePointZ2 (`range(0, maxIter+1)`).
// hist, when p.OrbitsOn, is the caller's per-worker orbit-history scratch;
// it must have capacity >= p.MaxIter+1.
func iterate(z0, add complex128, p Params, hist []complex128) Result {
	z := z0
	dz := complex(1, 0)
	stripeA := 0.0
	nZ1 := 0.0

	needDz := p.DistanceOn || p.AnyShading || p.StripeS > 0

	for i := 0; i <= p.MaxIter; i++ {
		if needDz {
			dz = 2*z*dz + 1
		}
		z = z*z + add

		var t float64
		if p.StripeS > 0 {
			t = (math.Sin(p.StripeS*math.Atan2(imag(z), real(z))) + 1) / 2
		}

		nZ := real(z)*real(z) + imag(z)*imag(z)

		if nZ > p.Bailout {
			return escapeResult(z, dz, nZ, i, stripeA, t, p)
		}

		if p.OrbitsOn {
			if hist != nil {
				idx := findPeriod(hist, i, z, 1e-15, 1e-11)
				if idx != -1 {
					return insideOrbitResult(i, idx, p.MaxIter)
				}
				hist[i] = z
			}
		} else {
			if math.Abs(nZ-nZ1) < 1e-10 {
				return Result{Escaped: false, I: p.MaxIter}
			}
			if i%20 == 0 {
				nZ1 = nZ
			}
		}

		if p.StripeS > 0 {
			stripeA = stripeA*p.StripeSigma + t*(1-p.StripeSigma)
		}
	}

	return Result{Escaped: false, I: p.MaxIter}
}

func escapeResult(z, dz complex128, nZ float64, i int, stripeA, t float64, p Params) Result {
	a := math.Sqrt(nZ)
	mu := 1 - math.Log(math.Log(a)*2/math.Log(p.Bailout))/math.Log(2)
	iSmooth := float64(i) + mu

	dist := 0.0
	if p.DistanceOn {
		dist = a * math.Log(a) / math.Abs(dz) / 2
	}

	potential := math.Log(a) / math.Pow(2, float64(i))

	if p.StripeS > 0 {
		sigma := p.StripeSigma
		stripeA = stripeA*(1+mu*(sigma-1)) + t*mu*(1-sigma)
		denom := 1 - math.Pow(sigma, float64(i))*(1+mu*(sigma-1))
		if denom != 0 {
			stripeA /= denom
		}
	}

	return Result{
		Escaped:   true,
		ISmooth:   iSmooth,
		NZ:        nZ,
		Z:         z,
		Dz:        dz,
		StripeA:   stripeA,
		Distance:  dist,
		Potential: potential,
	}
}

// insideOrbitResult builds the orbit-based interior color per spec §4.3:
// hsb_to_rgb(min(1, (i-idx)/10), 1.0, 1-i/max_iter).
func insideOrbitResult(i, idx, maxIter int) Result {
	h := float64(i-idx) / 10.0
	if h > 1.0 {
		h = 1.0
	}
	v := 1 - float64(i)/float64(maxIter)
	c := colorspace.HSBToRGB(h, 1.0, v)
	arr := [3]float64{c.R, c.G, c.B}
	return Result{Escaped: false, I: i, InsideColor: &arr}
}

// Mandelbrot iterates z <- z*z + c starting from z=0.
func Mandelbrot(c complex128, p Params, hist []complex128) Result {
	return iterate(0, c, p, hist)
}

// Julia iterates z <- z*z + seed starting from z=c (the pixel).
func Julia(c, seed complex128, p Params, hist []complex128) Result {
	return iterate(c, seed, p, hist)
}
