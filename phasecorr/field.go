package phasecorr

// MotionField is a block-grid of motion vectors, one per block
// position, filled in raster order by the estimator. Cells that have
// not been estimated yet read back as unset rather than as a zero
// vector, so the neighbor predictor can tell the two apart.
type MotionField struct {
	rows, cols int
	vecs       []Vec2
	set        []bool
}

// NewMotionField allocates an empty rows x cols field.
func NewMotionField(rows, cols int) *MotionField {
	if rows <= 0 || cols <= 0 {
		panic("phasecorr: motion field dimensions must be positive")
	}
	return &MotionField{
		rows: rows,
		cols: cols,
		vecs: make([]Vec2, rows*cols),
		set:  make([]bool, rows*cols),
	}
}

// Dims returns the block-grid row and column counts.
func (f *MotionField) Dims() (rows, cols int) {
	return f.rows, f.cols
}

// At returns the vector at a grid position and whether it has been set.
func (f *MotionField) At(rowpos, colpos int) (Vec2, bool) {
	i := f.index(rowpos, colpos)
	return f.vecs[i], f.set[i]
}

// Set stores the vector at a grid position.
func (f *MotionField) Set(rowpos, colpos int, v Vec2) {
	i := f.index(rowpos, colpos)
	f.vecs[i] = v
	f.set[i] = true
}

// Full reports whether every grid position has been populated.
func (f *MotionField) Full() bool {
	for _, ok := range f.set {
		if !ok {
			return false
		}
	}
	return true
}

func (f *MotionField) index(rowpos, colpos int) int {
	if rowpos < 0 || rowpos >= f.rows || colpos < 0 || colpos >= f.cols {
		panic("phasecorr: motion field position out of range")
	}
	return rowpos*f.cols + colpos
}
