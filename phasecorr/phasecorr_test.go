package phasecorr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// gaussianPatch renders a small blob centered at (cx, cy) so the
// correlation has an unambiguous, non-periodic feature to lock onto.
func gaussianPatch(rows, cols int, cx, cy, sigma float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			m.Set(y, x, math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma)))
		}
	}
	return m
}

// noisePatch has energy in every frequency bin, so a perfect match
// concentrates the full correlation mass in a single peak.
func noisePatch(rows, cols int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	m := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.Set(y, x, rng.Float64()*255)
		}
	}
	return m
}

func TestPhaseCorrelate_IdenticalPatches(t *testing.T) {
	patch := noisePatch(32, 32, 42)

	primary, _ := PhaseCorrelate(patch, patch, nil)

	assert.InDelta(t, 0, primary.Shift.X, 1e-9)
	assert.InDelta(t, 0, primary.Shift.Y, 1e-9)
	assert.Greater(t, primary.Response, 0.9, "a perfect match should score near the maximum")
}

func TestPhaseCorrelate_IdenticalPatchesWindowed(t *testing.T) {
	patch := noisePatch(32, 32, 43)
	window := HanningWindow(32, 32)

	primary, _ := PhaseCorrelate(patch, patch, window)

	assert.InDelta(t, 0, primary.Shift.X, 1e-9)
	assert.InDelta(t, 0, primary.Shift.Y, 1e-9)
	assert.Greater(t, primary.Response, 0.9)
}

func TestPhaseCorrelate_IntegerTranslation(t *testing.T) {
	cases := []struct {
		name   string
		tx, ty float64
	}{
		{"right", 3, 0},
		{"down", 0, 4},
		{"diagonal", 3, -2},
		{"left_up", -5, -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src1 := gaussianPatch(32, 32, 14, 16, 2.5)
			src2 := gaussianPatch(32, 32, 14+tc.tx, 16+tc.ty, 2.5)

			primary, _ := PhaseCorrelate(src1, src2, nil)

			assert.InDelta(t, tc.tx, primary.Shift.X, 0.5)
			assert.InDelta(t, tc.ty, primary.Shift.Y, 0.5)
		})
	}
}

func TestPhaseCorrelate_NonPowerOfTwoPatchesArePadded(t *testing.T) {
	// 12x12 inputs are padded to 16x16 internally; the shift must
	// still be recovered.
	src1 := gaussianPatch(12, 12, 5, 6, 1.5)
	src2 := gaussianPatch(12, 12, 7, 6, 1.5)

	primary, _ := PhaseCorrelate(src1, src2, nil)

	assert.InDelta(t, 2, primary.Shift.X, 0.5)
	assert.InDelta(t, 0, primary.Shift.Y, 0.5)
}

func TestPhaseCorrelate_SecondaryPeakFindsSecondMotion(t *testing.T) {
	// Two blobs moving in opposite directions. The correlation surface
	// carries a peak per motion, and the secondary candidate must pick
	// up the other one rather than re-read the primary's neighborhood.
	src1 := mat.NewDense(32, 32, nil)
	src1.Add(gaussianPatch(32, 32, 8, 8, 2.0), gaussianPatch(32, 32, 24, 24, 2.0))
	src2 := mat.NewDense(32, 32, nil)
	src2.Add(gaussianPatch(32, 32, 12, 8, 2.0), gaussianPatch(32, 32, 20, 24, 2.0))

	primary, secondary := PhaseCorrelate(src1, src2, nil)

	shifts := []Vec2{primary.Shift, secondary.Shift}
	for _, want := range []float64{4, -4} {
		found := false
		for _, s := range shifts {
			if math.Abs(s.X-want) < 0.5 && math.Abs(s.Y) < 0.5 {
				found = true
			}
		}
		assert.True(t, found, "no peak recovered shift (%v, 0)", want)
	}
	assert.LessOrEqual(t, secondary.Response, primary.Response+1e-9)
}

func TestPhaseCorrelate_PreconditionPanics(t *testing.T) {
	a := mat.NewDense(16, 16, nil)
	b := mat.NewDense(16, 8, nil)
	w := mat.NewDense(8, 8, nil)

	assert.Panics(t, func() { PhaseCorrelate(a, b, nil) }, "dimension mismatch")
	assert.Panics(t, func() { PhaseCorrelate(a, a, w) }, "window mismatch")
}

func TestHanningWindow(t *testing.T) {
	w := HanningWindow(16, 16)

	rows, cols := w.Dims()
	require.Equal(t, 16, rows)
	require.Equal(t, 16, cols)

	// Zero at the borders, unity nowhere but near the middle.
	assert.InDelta(t, 0, w.At(0, 0), 1e-12)
	assert.InDelta(t, 0, w.At(0, 8), 1e-12)
	assert.InDelta(t, 0, w.At(8, 0), 1e-12)

	max := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := w.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			if v > max {
				max = v
			}
		}
	}
	assert.Greater(t, max, 0.9)
}
