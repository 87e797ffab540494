package phasecorr

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Interpolator holds the block configuration for motion estimation and
// frame synthesis. One Interpolator can be reused across frame pairs;
// it keeps no per-pair state.
type Interpolator struct {
	blockSize int
	window    *mat.Dense
}

// NewInterpolator configures the engine for square blocks of the given
// edge length. With windowed set, every block pair is weighted by a
// Hann window before correlation; this suppresses block-edge leakage
// on natural imagery at some cost in peak sharpness.
func NewInterpolator(blockSize int, windowed bool) (*Interpolator, error) {
	if blockSize < 2 {
		return nil, errors.New("phasecorr: block size must be at least 2")
	}
	ip := &Interpolator{blockSize: blockSize}
	if windowed {
		ip.window = HanningWindow(blockSize, blockSize)
	}
	return ip, nil
}

// BlockSize returns the configured block edge length.
func (ip *Interpolator) BlockSize() int {
	return ip.blockSize
}

// EstimateField computes the motion field between two frames whose
// dimensions are multiples of the block size. Blocks are visited in
// raster order so the median predictor only ever reads neighbors that
// are already populated; positions whose neighbor class refers to
// not-yet-computed cells fall back to a zero seed candidate.
//
// Per block the candidates are the two phase correlation peaks and the
// neighbor median (or zero seed); the candidate with the lowest SAD
// cost against the current frame wins.
func (ip *Interpolator) EstimateField(prev, curr *mat.Dense) *MotionField {
	h, w := prev.Dims()
	ch, cw := curr.Dims()
	if h != ch || w != cw {
		panic("phasecorr: frame dimensions differ")
	}
	if h%ip.blockSize != 0 || w%ip.blockSize != 0 {
		panic("phasecorr: frame dimensions not a multiple of the block size")
	}

	rows := h / ip.blockSize
	cols := w / ip.blockSize
	field := NewMotionField(rows, cols)

	var cands [3]Vec2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pb := ip.blockAt(prev, r, c)
			cb := ip.blockAt(curr, r, c)

			pri, sec := PhaseCorrelate(pb, cb, ip.window)
			cands[0] = pri.Shift
			cands[1] = sec.Shift
			if mv, ok := MedianNeighbor(r, c, field); ok {
				cands[2] = mv
			} else {
				cands[2] = Vec2{}
			}

			best := cands[0]
			bestCost := BlockSAD(pb, r, c, curr, cands[0].X, cands[0].Y)
			for _, mv := range cands[1:] {
				if cost := BlockSAD(pb, r, c, curr, mv.X, mv.Y); cost < bestCost {
					best, bestCost = mv, cost
				}
			}

			field.Set(r, c, best)
		}
	}

	return field
}

// blockAt returns the block-sized view of m at grid position (r, c).
func (ip *Interpolator) blockAt(m *mat.Dense, r, c int) *mat.Dense {
	b := ip.blockSize
	return m.Slice(r*b, (r+1)*b, c*b, (c+1)*b).(*mat.Dense)
}
