package alist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
)

//Description is a parity matrix in the alist format. Connection lists are 1-indexed
// and padded with zeros to the max weight.
type Description struct {
	Cols, Rows                 int
	MaxColWeight, MaxRowWeight int
	ColWeights                 []int
	RowWeights                 []int
	ColConnections             [][]int
	RowConnections             [][]int
}

type tokens struct {
	scanner *bufio.Scanner
	read    int
}

func (t *tokens) next(section string) (int, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: input ended in %v after %v tokens", gf2.ErrMalformedInput, section, t.read)
	}
	t.read++
	v, err := strconv.Atoi(t.scanner.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: token %v %q in %v is not an integer", gf2.ErrMalformedInput, t.read, t.scanner.Text(), section)
	}
	return v, nil
}

//list reads n integers. The result grows as tokens arrive so a header that
// overstates the input fails on the missing tokens.
func (t *tokens) list(section string, n int) ([]int, error) {
	result := make([]int, 0, minInt(n, 64))
	for len(result) < n {
		v, err := t.next(section)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

//Parse reads an alist description. Nothing is returned unless every section is complete.
func Parse(r io.Reader) (*Description, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	t := &tokens{scanner: scanner}

	header, err := t.list("header", 4)
	if err != nil {
		return nil, err
	}
	for _, v := range header {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative header value in %v", gf2.ErrMalformedInput, header)
		}
	}

	d := &Description{Cols: header[0], Rows: header[1], MaxColWeight: header[2], MaxRowWeight: header[3]}
	if err := gf2.CheckShape(d.Rows, d.Cols); err != nil {
		return nil, err
	}
	if d.MaxColWeight > d.Rows || d.MaxRowWeight > d.Cols {
		return nil, fmt.Errorf("%w: max weights (%v,%v) exceed the %vx%v matrix", gf2.ErrMalformedInput, d.MaxColWeight, d.MaxRowWeight, d.Rows, d.Cols)
	}
	if d.ColWeights, err = t.list("column weights", d.Cols); err != nil {
		return nil, err
	}
	if d.RowWeights, err = t.list("row weights", d.Rows); err != nil {
		return nil, err
	}

	for c := 0; c < d.Cols; c++ {
		connections, err := t.list("column connections", d.MaxColWeight)
		if err != nil {
			return nil, err
		}
		d.ColConnections = append(d.ColConnections, connections)
	}
	for r := 0; r < d.Rows; r++ {
		connections, err := t.list("row connections", d.MaxRowWeight)
		if err != nil {
			return nil, err
		}
		d.RowConnections = append(d.RowConnections, connections)
	}
	return d, nil
}

//Matrix builds the dense Rows×Cols matrix from the row connections. Each row stops at its first 0.
func (d *Description) Matrix() (mat.SparseMat, error) {
	H, err := gf2.NewMatrix(d.Rows, d.Cols)
	if err != nil {
		return nil, err
	}
	if len(d.RowConnections) != d.Rows {
		return nil, fmt.Errorf("%w: expected %v row connection lists but found %v", gf2.ErrMalformedInput, d.Rows, len(d.RowConnections))
	}
	for r, row := range d.RowConnections {
		for _, c := range row {
			if c == 0 {
				break
			}
			if c < 0 || c > d.Cols {
				return nil, fmt.Errorf("%w: row %v references column %v outside [1,%v]", gf2.ErrMalformedInput, r+1, c, d.Cols)
			}
			H.Set(r, c-1, 1)
		}
	}
	return H, nil
}

//ReadMatrix parses r and returns the dense matrix it describes.
func ReadMatrix(r io.Reader) (mat.SparseMat, error) {
	d, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return d.Matrix()
}

//FromMatrix describes H in alist form.
func FromMatrix(H mat.SparseMat) *Description {
	rows, cols := H.Dims()
	d := &Description{Cols: cols, Rows: rows}

	d.RowConnections = make([][]int, rows)
	d.RowWeights = make([]int, rows)
	columns := make([][]int, cols)
	for r := 0; r < rows; r++ {
		for _, c := range H.Row(r).NonzeroArray() {
			d.RowConnections[r] = append(d.RowConnections[r], c+1)
			columns[c] = append(columns[c], r+1)
		}
		d.RowWeights[r] = len(d.RowConnections[r])
		if d.RowWeights[r] > d.MaxRowWeight {
			d.MaxRowWeight = d.RowWeights[r]
		}
	}

	d.ColConnections = columns
	d.ColWeights = make([]int, cols)
	for c := range columns {
		d.ColWeights[c] = len(columns[c])
		if d.ColWeights[c] > d.MaxColWeight {
			d.MaxColWeight = d.ColWeights[c]
		}
	}

	for r := range d.RowConnections {
		d.RowConnections[r] = padded(d.RowConnections[r], d.MaxRowWeight)
	}
	for c := range d.ColConnections {
		d.ColConnections[c] = padded(d.ColConnections[c], d.MaxColWeight)
	}
	return d
}

func padded(values []int, n int) []int {
	result := make([]int, n)
	copy(result, values)
	return result
}

//Write emits d in the text form read by Parse.
func (d *Description) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, []int{d.Cols, d.Rows})
	writeLine(bw, []int{d.MaxColWeight, d.MaxRowWeight})
	writeLine(bw, d.ColWeights)
	writeLine(bw, d.RowWeights)
	for _, c := range d.ColConnections {
		writeLine(bw, c)
	}
	for _, r := range d.RowConnections {
		writeLine(bw, r)
	}
	return bw.Flush()
}

//Write emits the alist text for H.
func Write(w io.Writer, H mat.SparseMat) error {
	return FromMatrix(H).Write(w)
}

func writeLine(w *bufio.Writer, values []int) {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.Itoa(v)
	}
	w.WriteString(strings.Join(strs, " "))
	w.WriteString("\n")
}
