package phasecorr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Interpolate synthesizes the temporal midpoint between two frames of
// identical dimensions. Frames whose dimensions are not a multiple of
// the block size are edge-replicated on the bottom/right so the block
// grid is well-defined, and the output is cropped back.
func (ip *Interpolator) Interpolate(prev, curr *mat.Dense) (*mat.Dense, error) {
	ph, pw := prev.Dims()
	ch, cw := curr.Dims()
	if ph == 0 || pw == 0 {
		return nil, fmt.Errorf("phasecorr: empty frame")
	}
	if ph != ch || pw != cw {
		return nil, fmt.Errorf("phasecorr: frame dimensions differ: %dx%d vs %dx%d", ph, pw, ch, cw)
	}

	p := ip.padToBlockMultiple(prev)
	c := ip.padToBlockMultiple(curr)

	field := ip.EstimateField(p, c)
	out := Compensate(p, c, field, ip.blockSize)

	if oh, ow := out.Dims(); oh != ph || ow != pw {
		out = mat.DenseCopyOf(out.Slice(0, ph, 0, pw))
	}
	return out, nil
}

// padToBlockMultiple replicates the last row/column until both frame
// dimensions divide evenly into blocks. Returns m unchanged when no
// padding is needed.
func (ip *Interpolator) padToBlockMultiple(m *mat.Dense) *mat.Dense {
	h, w := m.Dims()
	b := ip.blockSize
	ph := ((h + b - 1) / b) * b
	pw := ((w + b - 1) / b) * b
	if ph == h && pw == w {
		return m
	}

	out := mat.NewDense(ph, pw, nil)
	for y := 0; y < ph; y++ {
		sy := y
		if sy > h-1 {
			sy = h - 1
		}
		for x := 0; x < pw; x++ {
			sx := x
			if sx > w-1 {
				sx = w - 1
			}
			out.Set(y, x, m.At(sy, sx))
		}
	}
	return out
}
