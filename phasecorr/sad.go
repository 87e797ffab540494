package phasecorr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BlockSAD scores a candidate displacement for the reference block at
// grid position (rowpos, colpos) against the target frame. The
// displacement is rounded to whole pixels. Samples that would land
// outside the target accumulate the reference pixel's own intensity
// instead of a difference, penalizing vectors that leave the frame in
// proportion to how much signal they abandon, without rejecting them
// outright. Lower is better.
func BlockSAD(ref *mat.Dense, rowpos, colpos int, target *mat.Dense, dx, dy float64) float64 {
	br, bc := ref.Dims()
	tr, tc := target.Dims()

	y := rowpos * br
	x := colpos * bc
	dxi := int(math.Round(dx))
	dyi := int(math.Round(dy))

	var sad float64
	for i := 0; i < br; i++ {
		ty := i + y + dyi
		for j := 0; j < bc; j++ {
			tx := j + x + dxi
			if ty < 0 || ty >= tr || tx < 0 || tx >= tc {
				sad += ref.At(i, j)
			} else {
				sad += math.Abs(ref.At(i, j) - target.At(ty, tx))
			}
		}
	}
	return sad
}
