package phasecorr

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Vec2 is a 2D displacement in pixels. X is horizontal, Y vertical.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Peak is one candidate displacement recovered from the correlation
// surface. Response is normalized to roughly [0, 1]; a sharp single
// peak for a perfect shift scores close to 1.
type Peak struct {
	Shift    Vec2
	Response float64
}

// centroidRadius is the half-width of the window used for the
// sub-pixel weighted centroid. 5x5 seems about right here.
const centroidRadius = 2

// PhaseCorrelate estimates the displacement of src2 relative to src1
// using phase plane correlation. It returns the two strongest
// correlation peaks so the caller can arbitrate between a dominant and
// a competing local motion without re-running the transform.
//
// Both patches must have identical dimensions; window, when non-nil,
// must match them too and is multiplied into both patches before the
// transform to suppress edge artifacts. Violations panic: they are
// caller bugs, not runtime conditions.
func PhaseCorrelate(src1, src2, window *mat.Dense) (primary, secondary Peak) {
	r1, c1 := src1.Dims()
	r2, c2 := src2.Dims()
	if r1 == 0 || c1 == 0 {
		panic("phasecorr: empty patch")
	}
	if r1 != r2 || c1 != c2 {
		panic("phasecorr: patch dimensions differ")
	}
	if window != nil {
		wr, wc := window.Dims()
		if wr != r1 || wc != c1 {
			panic("phasecorr: window dimensions differ from patches")
		}
	}

	// Pad to the nearest power of two, zero-filling bottom/right.
	rows := nextPow2(r1)
	cols := nextPow2(c1)

	a := paddedComplex(src1, window, rows, cols)
	b := paddedComplex(src2, window, rows, cols)

	if err := forward2D(a); err != nil {
		panic("phasecorr: " + err.Error())
	}
	if err := forward2D(b); err != nil {
		panic("phasecorr: " + err.Error())
	}

	// Cross-power spectrum normalized by its own magnitude: amplitude
	// cancels, leaving the phase shift only.
	const eps = 1e-12
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := a[i][j] * cmplx.Conj(b[i][j])
			if m := cmplx.Abs(p); m > eps {
				a[i][j] = p / complex(m, 0)
			} else {
				a[i][j] = 0
			}
		}
	}

	if err := inverse2D(a); err != nil {
		panic("phasecorr: " + err.Error())
	}

	surface := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		surface[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			surface[i][j] = real(a[i][j])
		}
	}

	// Move the zero-lag bin to the patch center so a zero shift maps
	// to the middle of the surface.
	fftShift(surface)

	cy := float64(rows) / 2.0
	cx := float64(cols) / 2.0

	py, px := maxLoc(surface, -1, -1)
	t1, resp1 := weightedCentroid(surface, py, px)
	primary = Peak{
		Shift:    Vec2{X: cx - t1.X, Y: cy - t1.Y},
		Response: resp1,
	}

	// Second-best peak, excluding the centroid window of the first.
	// The surface is queried, never mutated: the two peaks are
	// independent reads of one computed correlation.
	qy, qx := maxLoc(surface, py, px)
	t2, resp2 := weightedCentroid(surface, qy, qx)
	secondary = Peak{
		Shift:    Vec2{X: cx - t2.X, Y: cy - t2.Y},
		Response: resp2,
	}

	return primary, secondary
}

// paddedComplex copies src (optionally windowed) into a rows x cols
// complex grid, zero-padded on the bottom/right margins.
func paddedComplex(src, window *mat.Dense, rows, cols int) [][]complex128 {
	sr, sc := src.Dims()
	out := make([][]complex128, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]complex128, cols)
		if i >= sr {
			continue
		}
		for j := 0; j < sc; j++ {
			v := src.At(i, j)
			if window != nil {
				v *= window.At(i, j)
			}
			out[i][j] = complex(v, 0)
		}
	}
	return out
}

// maxLoc returns the location of the surface's global maximum. When
// excY/excX are non-negative, positions within the centroid window
// around them are skipped.
func maxLoc(surface [][]float64, excY, excX int) (int, int) {
	best := math.Inf(-1)
	by, bx := 0, 0
	for i := range surface {
		for j := range surface[i] {
			if excY >= 0 && absInt(i-excY) <= centroidRadius && absInt(j-excX) <= centroidRadius {
				continue
			}
			if surface[i][j] > best {
				best = surface[i][j]
				by, bx = i, j
			}
		}
	}
	return by, bx
}

// weightedCentroid refines a peak location to sub-pixel accuracy over
// a 5x5 window clipped to the surface bounds. The returned response is
// the window's summed correlation mass.
func weightedCentroid(surface [][]float64, py, px int) (Vec2, float64) {
	rows := len(surface)
	cols := len(surface[0])

	minY := py - centroidRadius
	if minY < 0 {
		minY = 0
	}
	maxY := py + centroidRadius
	if maxY > rows-1 {
		maxY = rows - 1
	}
	minX := px - centroidRadius
	if minX < 0 {
		minX = 0
	}
	maxX := px + centroidRadius
	if maxX > cols-1 {
		maxX = cols - 1
	}

	var sumW, sumX, sumY float64
	for i := minY; i <= maxY; i++ {
		for j := minX; j <= maxX; j++ {
			w := surface[i][j]
			sumW += w
			sumX += w * float64(j)
			sumY += w * float64(i)
		}
	}

	if sumW == 0 {
		return Vec2{X: float64(px), Y: float64(py)}, 0
	}
	return Vec2{X: sumX / sumW, Y: sumY / sumW}, sumW
}

// HanningWindow builds a separable Hann weighting window, the usual
// choice for suppressing block-edge leakage before the transform.
func HanningWindow(rows, cols int) *mat.Dense {
	w := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		wy := 1.0
		if rows > 1 {
			wy = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(rows-1))
		}
		for j := 0; j < cols; j++ {
			wx := 1.0
			if cols > 1 {
				wx = 0.5 - 0.5*math.Cos(2*math.Pi*float64(j)/float64(cols-1))
			}
			w.Set(i, j, wy*wx)
		}
	}
	return w
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
