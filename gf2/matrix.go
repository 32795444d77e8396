package gf2

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

//MaxDimension bounds the rows and columns of any matrix built from outside input.
const MaxDimension = 1 << 24

//CheckShape returns ErrMalformedInput when a rows×cols matrix can't be built.
func CheckShape(rows, cols int) error {
	if rows < 0 || cols < 0 || rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: matrix shape (%v,%v) must be within [0,%v]", ErrMalformedInput, rows, cols, MaxDimension)
	}
	return nil
}

//NewMatrix creates a zero CSR matrix after checking the shape.
func NewMatrix(rows, cols int) (mat.SparseMat, error) {
	if err := CheckShape(rows, cols); err != nil {
		return nil, err
	}
	return mat.CSRMat(rows, cols), nil
}

//Mul returns a·b over GF(2). Each row of the result is the sum of the rows of b picked
// by the ones in the matching row of a.
func Mul(a, b mat.SparseMat) (mat.SparseMat, error) {
	aRows, aCols := a.Dims()
	bRows, bCols := b.Dims()
	if aCols != bRows {
		return nil, dimensionErrorf("(%v,%v)·(%v,%v)", aRows, aCols, bRows, bCols)
	}

	bs := make([]mat.SparseVector, bRows)
	for r := range bs {
		bs[r] = b.Row(r)
	}

	result := mat.CSRMat(aRows, bCols)
	for r := 0; r < aRows; r++ {
		sum := mat.CSRVec(bCols)
		for _, k := range a.Row(r).NonzeroArray() {
			sum.Add(sum, bs[k])
		}
		result.SetRow(r, sum)
	}
	return result, nil
}

//VecMul returns v·m over GF(2).
func VecMul(v mat.SparseVector, m mat.SparseMat) mat.SparseVector {
	rows, cols := m.Dims()
	if v.Len() != rows {
		panic(fmt.Sprintf("vector length %v required but found %v", rows, v.Len()))
	}
	result := mat.CSRVec(cols)
	for _, r := range v.NonzeroArray() {
		result.Add(result, m.Row(r))
	}
	return result
}

//IsZero reports whether every entry of m is 0.
func IsZero(m mat.SparseMat) bool {
	rows, _ := m.Dims()
	for r := 0; r < rows; r++ {
		if !m.Row(r).IsZero() {
			return false
		}
	}
	return true
}

//Flip toggles bit i of v.
func Flip(v mat.SparseVector, i int) {
	v.Set(i, v.At(i)+1)
}

//FromRows stacks the vectors as the rows of a new matrix.
func FromRows(cols int, rows ...mat.SparseVector) mat.SparseMat {
	m := mat.CSRMat(len(rows), cols)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return m
}
