package phasecorr

// MedianNeighbor predicts a block's motion vector from the three
// nearest neighbors for its position class. The median is taken per
// coordinate (median of the x components, median of the y components),
// which resists a single outlier neighbor. Only three neighbors are
// ever consulted, even in the interior where more exist; the cheap
// estimate is good enough as a search candidate.
//
// ok is false when any required neighbor lies outside the grid or has
// not been estimated yet, which the caller handles by substituting a
// seed vector.
func MedianNeighbor(rowpos, colpos int, field *MotionField) (mv Vec2, ok bool) {
	rows, cols := field.Dims()

	var idx [3][2]int
	switch {
	case rowpos == 0 && colpos == 0:
		// top-left corner
		idx = [3][2]int{
			{rowpos, colpos + 1},
			{rowpos + 1, colpos},
			{rowpos + 1, colpos + 1},
		}
	case colpos == 0:
		// along the left edge
		idx = [3][2]int{
			{rowpos - 1, colpos},
			{rowpos - 1, colpos + 1},
			{rowpos, colpos + 1},
		}
	case rowpos == 0:
		// along the top edge
		idx = [3][2]int{
			{rowpos, colpos - 1},
			{rowpos + 1, colpos - 1},
			{rowpos + 1, colpos},
		}
	default:
		// middle region
		idx = [3][2]int{
			{rowpos - 1, colpos - 1},
			{rowpos - 1, colpos},
			{rowpos, colpos - 1},
		}
	}

	var xs, ys [3]float64
	for n, pos := range idx {
		r, c := pos[0], pos[1]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return Vec2{}, false
		}
		v, set := field.At(r, c)
		if !set {
			return Vec2{}, false
		}
		xs[n] = v.X
		ys[n] = v.Y
	}

	return Vec2{X: median3(xs[0], xs[1], xs[2]), Y: median3(ys[0], ys[1], ys[2])}, true
}

func median3(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}
