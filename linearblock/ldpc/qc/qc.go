package qc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

//Zero marks a block that is all zero.
const Zero = -1

//BaseMatrix is the compact description of a quasi-cyclic code: a BlockRows×BlockCols
// grid of shifts, each naming a Z×Z identity rotated right by the shift.
type BaseMatrix struct {
	BlockRows int
	BlockCols int
	Z         int
	Shifts    [][]int
}

//InvalidShiftError reports the first shift outside [-1,Z).
type InvalidShiftError struct {
	Row, Col int
	Shift    int
	Z        int
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("invalid shift %v at block (%v,%v): shift must be in [-1,%v)", e.Shift, e.Row, e.Col, e.Z)
}

func (e *InvalidShiftError) Is(target error) bool {
	return target == gf2.ErrInvalidShift
}

//Parse reads the text form: "blockCols blockRows Z" followed by the row-major shifts.
// Tokens in the shift section that are not integers are ignored.
func Parse(r io.Reader) (*BaseMatrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	header := make([]int, 3)
	for i, name := range []string{"block columns", "block rows", "expansion factor"} {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: missing %v", gf2.ErrMalformedInput, name)
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: %v must be a positive integer but found %q", gf2.ErrMalformedInput, name, scanner.Text())
		}
		header[i] = v
	}

	base := &BaseMatrix{BlockCols: header[0], BlockRows: header[1], Z: header[2]}
	if err := base.checkShape(); err != nil {
		return nil, err
	}
	base.Shifts = make([][]int, base.BlockRows)
	for r := range base.Shifts {
		base.Shifts[r] = make([]int, base.BlockCols)
	}

	count := 0
	total := base.BlockRows * base.BlockCols
	for count < total && scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			logrus.Debugf("ignoring shift token %q", scanner.Text())
			continue
		}
		base.Shifts[count/base.BlockCols][count%base.BlockCols] = v
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if count < total {
		return nil, fmt.Errorf("%w: expected %v shifts but found %v", gf2.ErrMalformedInput, total, count)
	}
	return base, nil
}

//checkShape bounds the expanded matrix to gf2.MaxDimension rows and columns.
func (b *BaseMatrix) checkShape() error {
	if b.BlockRows <= 0 || b.BlockCols <= 0 || b.Z <= 0 {
		return fmt.Errorf("%w: block rows, block columns and Z must be positive but found (%v,%v,%v)", gf2.ErrMalformedInput, b.BlockRows, b.BlockCols, b.Z)
	}
	if b.Z > gf2.MaxDimension || b.BlockRows > gf2.MaxDimension/b.Z || b.BlockCols > gf2.MaxDimension/b.Z {
		return fmt.Errorf("%w: %vx%v blocks of Z=%v expand beyond %v rows or columns", gf2.ErrMalformedInput, b.BlockRows, b.BlockCols, b.Z, gf2.MaxDimension)
	}
	return nil
}

//Validate checks the expanded shape, then returns an InvalidShiftError for the first
// shift outside [-1,Z).
func (b *BaseMatrix) Validate() error {
	if err := b.checkShape(); err != nil {
		return err
	}
	if len(b.Shifts) != b.BlockRows {
		return fmt.Errorf("%w: expected %v block rows but found %v", gf2.ErrDimensionMismatch, b.BlockRows, len(b.Shifts))
	}
	for r, row := range b.Shifts {
		if len(row) != b.BlockCols {
			return fmt.Errorf("%w: expected %v block columns in row %v but found %v", gf2.ErrDimensionMismatch, b.BlockCols, r, len(row))
		}
		for c, s := range row {
			if s < Zero || s >= b.Z {
				return &InvalidShiftError{Row: r, Col: c, Shift: s, Z: b.Z}
			}
		}
	}
	return nil
}

//Dims returns the shape of the expanded matrix.
func (b *BaseMatrix) Dims() (rows, cols int) {
	return b.BlockRows * b.Z, b.BlockCols * b.Z
}

//Write emits the text form read by Parse, one block row per line.
func (b *BaseMatrix) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%v %v %v\n", b.BlockCols, b.BlockRows, b.Z)
	for _, row := range b.Shifts {
		for c, s := range row {
			if c > 0 {
				bw.WriteString(" ")
			}
			bw.WriteString(strconv.Itoa(s))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

//Expand builds the dense parity matrix. Block rows are expanded in parallel,
// threads <=0 uses all CPUs.
func Expand(ctx context.Context, base *BaseMatrix, threads int) (mat.SparseMat, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	H, err := gf2.NewMatrix(base.Dims())
	if err != nil {
		return nil, err
	}
	z := base.Z
	pool := threadpool.NewFixedSize(ctx, threads, base.BlockRows)
	for r := 0; r < base.BlockRows; r++ {
		blockRow := r
		pool.Add(func() {
			for c, s := range base.Shifts[blockRow] {
				if s == Zero {
					continue
				}
				for i := 0; i < z; i++ {
					H.Set(blockRow*z+i, c*z+(i+s)%z, 1)
				}
			}
		})
	}
	pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return H, nil
}

//New expands base and derives its generator matrix.
func New(ctx context.Context, base *BaseMatrix, threads int) (*linearblock.LinearBlock, error) {
	H, err := Expand(ctx, base, threads)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("expanded %vx%v base matrix (Z=%v) to %vx%v", base.BlockRows, base.BlockCols, base.Z, base.BlockRows*base.Z, base.BlockCols*base.Z)
	return linearblock.New(ctx, H, threads)
}

//Array returns the base matrix of the array code: block (r,c) is shifted by r*c mod z.
// For prime z the expanded code has no 4-cycles.
func Array(z, blockRows, blockCols int) *BaseMatrix {
	base := &BaseMatrix{BlockRows: blockRows, BlockCols: blockCols, Z: z, Shifts: make([][]int, blockRows)}
	for r := range base.Shifts {
		base.Shifts[r] = make([]int, blockCols)
		for c := range base.Shifts[r] {
			base.Shifts[r][c] = r * c % z
		}
	}
	return base
}
