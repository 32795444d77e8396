package gf2

import (
	"bufio"
	"fmt"
	"io"

	mat "github.com/nathanhack/sparsemat"
)

//VectorFromBytes creates a vector from one byte per bit, bytes must be 0 or 1.
func VectorFromBytes(bs []byte) (mat.SparseVector, error) {
	v := mat.CSRVec(len(bs))
	for i, b := range bs {
		switch b {
		case 0:
		case 1:
			v.Set(i, 1)
		default:
			return nil, fmt.Errorf("%w: byte %v at index %v is not a bit", ErrMalformedInput, b, i)
		}
	}
	return v, nil
}

//VectorBytes returns v as one byte per bit.
func VectorBytes(v mat.SparseVector) []byte {
	result := make([]byte, v.Len())
	for _, i := range v.NonzeroArray() {
		result[i] = 1
	}
	return result
}

//FromBytes creates a rows×cols matrix from a flat row-major slice holding one byte per bit.
func FromBytes(rows, cols int, bs []byte) (mat.SparseMat, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(bs) != rows*cols {
		return nil, dimensionErrorf("expected %v bytes for a %vx%v matrix but found %v", rows*cols, rows, cols, len(bs))
	}
	for r := 0; r < rows; r++ {
		row, err := VectorFromBytes(bs[r*cols : (r+1)*cols])
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", r, err)
		}
		m.SetRow(r, row)
	}
	return m, nil
}

//Bytes returns the flat row-major one byte per bit form of m.
func Bytes(m mat.SparseMat) []byte {
	rows, cols := m.Dims()
	result := make([]byte, rows*cols)
	for r := 0; r < rows; r++ {
		for _, c := range m.Row(r).NonzeroArray() {
			result[r*cols+c] = 1
		}
	}
	return result
}

//ReadBinary reads a rows×cols matrix stored flat row-major with one byte per bit.
func ReadBinary(r io.Reader, rows, cols int) (mat.SparseMat, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	buf := make([]byte, cols)
	for i := 0; i < rows; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: row %v of %v: %v", ErrMalformedInput, i, rows, err)
		}
		row, err := VectorFromBytes(buf)
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", i, err)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

//WriteBinary writes m flat row-major with one byte per bit.
func WriteBinary(w io.Writer, m mat.SparseMat) error {
	rows, _ := m.Dims()
	bw := bufio.NewWriter(w)
	for i := 0; i < rows; i++ {
		if _, err := bw.Write(VectorBytes(m.Row(i))); err != nil {
			return err
		}
	}
	return bw.Flush()
}
