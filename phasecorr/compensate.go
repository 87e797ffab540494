package phasecorr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Compensate synthesizes the frame temporally halfway between prev and
// curr from a fully populated motion field. Each block is projected
// forward by half its vector; its contribution at every pixel is the
// mean of the previous-frame sample and the current-frame sample found
// a full vector ahead, so both temporal directions agree on the
// midpoint. Where projected blocks overlap, contributions are averaged
// by accumulated weight rather than overwritten, avoiding block seams.
// Pixels no block projects into fall back to the mean of the
// co-located previous and current samples.
func Compensate(prev, curr *mat.Dense, field *MotionField, blockSize int) *mat.Dense {
	h, w := prev.Dims()
	ch, cw := curr.Dims()
	if h != ch || w != cw {
		panic("phasecorr: frame dimensions differ")
	}
	if !field.Full() {
		panic("phasecorr: motion field not fully populated")
	}

	acc := make([]float64, h*w)
	weight := make([]float64, h*w)

	rows, cols := field.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v, _ := field.At(r, c)
			dxi := int(math.Round(v.X))
			dyi := int(math.Round(v.Y))
			hx := int(math.Round(v.X / 2))
			hy := int(math.Round(v.Y / 2))

			for i := 0; i < blockSize; i++ {
				sy := r*blockSize + i
				if sy >= h {
					break
				}
				oy := sy + hy
				for j := 0; j < blockSize; j++ {
					sx := c*blockSize + j
					if sx >= w {
						break
					}
					ox := sx + hx
					if oy < 0 || oy >= h || ox < 0 || ox >= w {
						continue
					}

					val := prev.At(sy, sx)
					by := sy + dyi
					bx := sx + dxi
					if by >= 0 && by < h && bx >= 0 && bx < w {
						val = 0.5 * (val + curr.At(by, bx))
					}

					acc[oy*w+ox] += val
					weight[oy*w+ox]++
				}
			}
		}
	}

	out := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if wt := weight[y*w+x]; wt > 0 {
				out.Set(y, x, acc[y*w+x]/wt)
			} else {
				out.Set(y, x, 0.5*(prev.At(y, x)+curr.At(y, x)))
			}
		}
	}
	return out
}
