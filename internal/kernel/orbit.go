package kernel

// Scratch is a reusable per-worker orbit-history buffer (spec §9: "switch
// to a thread-local reusable buffer... sized max(max_iter, 1000)").
// A fresh Scratch must never be shared across goroutines.
type Scratch struct {
	hist []complex128
}

// NewScratch allocates a Scratch sized to the given max_iter (at least
// 1000), plus one to cover iterate's inclusive 0..max_iter range.
func NewScratch(maxIter int) *Scratch {
	size := maxIter + 1
	if size < 1000 {
		size = 1000
	}
	return &Scratch{hist: make([]complex128, size)}
}

// Slice returns the underlying reusable buffer for passing into Mandelbrot/Julia.
func (s *Scratch) Slice() []complex128 { return s.hist }

const orbitSearchWindow = 100

// findPeriod implements spec §4.3's "Orbit-based interior coloring" period
// detection: search hist[0:n] from the end (largest index first), capped
// at the last 100 entries, for the largest idx with |z-hist[idx]|^2 <
// tolerance1; if none, return -1. Otherwise refine by finding the largest
// idx with |z-hist[idx]|^2 < tolerance2.
func findPeriod(hist []complex128, n int, z complex128, tol1, tol2 float64) int {
	start := n - orbitSearchWindow
	if start < 0 {
		start = 0
	}

	coarse := -1
	for k := n - 1; k >= start; k-- {
		d := z - hist[k]
		if real(d)*real(d)+imag(d)*imag(d) < tol1 {
			coarse = k
			break
		}
	}
	if coarse == -1 {
		return -1
	}

	fine := -1
	for k := n - 1; k >= start; k-- {
		d := z - hist[k]
		if real(d)*real(d)+imag(d)*imag(d) < tol2 {
			fine = k
			break
		}
	}
	return fine
}
