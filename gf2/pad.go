package gf2

import mat "github.com/nathanhack/sparsemat"

//AlignUp rounds n up to the next multiple; a multiple <= 1 leaves n unchanged.
func AlignUp(n, multiple int) int {
	if multiple <= 1 {
		return n
	}
	return (n + multiple - 1) / multiple * multiple
}

//Pad returns a rows×cols copy of m with zero rows and columns appended.
// m occupies the top-left corner unchanged.
func Pad(m mat.SparseMat, rows, cols int) (mat.SparseMat, error) {
	r, c := m.Dims()
	if rows < r || cols < c {
		return nil, dimensionErrorf("can not pad (%v,%v) down to (%v,%v)", r, c, rows, cols)
	}
	result, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		row := mat.CSRVec(cols)
		for _, j := range m.Row(i).NonzeroArray() {
			row.Set(j, 1)
		}
		result.SetRow(i, row)
	}
	return result, nil
}

//Align pads m so its dimensions are multiples of rowMultiple and colMultiple.
func Align(m mat.SparseMat, rowMultiple, colMultiple int) (mat.SparseMat, error) {
	r, c := m.Dims()
	return Pad(m, AlignUp(r, rowMultiple), AlignUp(c, colMultiple))
}

//Unpad extracts the top-left rows×cols submatrix.
func Unpad(m mat.SparseMat, rows, cols int) (mat.SparseMat, error) {
	r, c := m.Dims()
	if rows < 0 || cols < 0 || rows > r || cols > c {
		return nil, dimensionErrorf("can not extract (%v,%v) from (%v,%v)", rows, cols, r, c)
	}
	if rows == 0 || cols == 0 {
		return mat.CSRMat(rows, cols), nil
	}
	return m.Slice(0, 0, rows, cols), nil
}
