package phasecorr

import (
	"github.com/brettbuddin/fourier"
)

// nextPow2 returns the smallest power of two >= n. Radix-2 transforms
// only accept power-of-two lengths, so patches are padded up to this.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// forward2D computes the in-place 2D DFT of data by transforming every
// row and then every column. Both dimensions must be powers of two.
func forward2D(data [][]complex128) error {
	rows := len(data)
	cols := len(data[0])

	for i := 0; i < rows; i++ {
		if err := fourier.Forward(data[i]); err != nil {
			return err
		}
	}

	col := make([]complex128, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = data[i][j]
		}
		if err := fourier.Forward(col); err != nil {
			return err
		}
		for i := 0; i < rows; i++ {
			data[i][j] = col[i]
		}
	}

	return nil
}

// inverse2D computes the in-place normalized inverse 2D DFT using the
// conjugation identity ifft(x) = conj(fft(conj(x))) / n.
func inverse2D(data [][]complex128) error {
	rows := len(data)
	cols := len(data[0])

	for i := range data {
		for j := range data[i] {
			data[i][j] = complex(real(data[i][j]), -imag(data[i][j]))
		}
	}

	if err := forward2D(data); err != nil {
		return err
	}

	scale := 1.0 / float64(rows*cols)
	for i := range data {
		for j := range data[i] {
			data[i][j] = complex(real(data[i][j])*scale, -imag(data[i][j])*scale)
		}
	}

	return nil
}

// fftShift circularly shifts the surface so the zero-lag bin lands at
// (rows/2, cols/2).
func fftShift(m [][]float64) {
	rows := len(m)
	cols := len(m[0])

	shifted := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		shifted[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			shifted[i][j] = m[(i+rows-rows/2)%rows][(j+cols-cols/2)%cols]
		}
	}
	for i := 0; i < rows; i++ {
		copy(m[i], shifted[i])
	}
}
