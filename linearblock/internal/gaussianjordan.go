package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

type EventKind int

const (
	RowSwap EventKind = iota
	ColumnSwap
	ColumnSkipped
)

func (k EventKind) String() string {
	switch k {
	case RowSwap:
		return "row swap"
	case ColumnSwap:
		return "pivot found via column swap"
	case ColumnSkipped:
		return "target column skipped"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

//Event records a pivoting decision made while reducing. For RowSwap With is the row
// swapped into PivotRow, for ColumnSwap it is the column swapped into Column.
type Event struct {
	Kind     EventKind
	Column   int
	PivotRow int
	With     int
}

//SystematicForm is the result of Reduce: the reduced matrix is [PT | I] once the columns
// are ordered by Permutation.
type SystematicForm struct {
	Rank        int
	PT          mat.SparseMat // M×K
	Permutation gf2.Permutation
	Events      []Event
}

//FindSwapColumn searches the pivotRow of H for a column that can be swapped into the
// target column. The information columns [0,N-M) are searched first followed by the
// parity columns after target. Columns already fixed into the identity block [N-M,target]
// are never eligible.
func FindSwapColumn(H mat.SparseMat, pivotRow, target, m int) (int, bool) {
	_, n := H.Dims()
	ones := H.Row(pivotRow).NonzeroArray()
	if len(ones) > 0 && ones[0] < n-m {
		return ones[0], true
	}
	for _, c := range ones {
		if c > target {
			return c, true
		}
	}
	return -1, false
}

func findPivotRow(H mat.SparseMat, pivotRow, column int) int {
	rows, _ := H.Dims()
	for r := pivotRow + 1; r < rows; r++ {
		if H.At(r, column) == 1 {
			return r
		}
	}
	return -1
}

//Reduce runs Gauss-Jordan elimination over GF(2) turning the last M columns of H into
// an identity block, swapping in columns from elsewhere when they can't be pivoted.
// H is not modified.
func Reduce(ctx context.Context, H mat.SparseMat, threads int) (*SystematicForm, error) {
	m, n := H.Dims()
	if m >= n {
		return nil, fmt.Errorf("%w: H matrix shape == (rows, cols) where rows < cols required but found (%v,%v)", gf2.ErrDimensionMismatch, m, n)
	}
	k := n - m

	work := mat.CSRMatCopy(H)
	form := &SystematicForm{Permutation: gf2.IdentityPermutation(n)}

	bar := pb.Full.New(m)
	bar.Set("prefix", "Reducing Row ")
	bar.SetWriter(os.Stdout)
	showProgressBar := logrus.GetLevel() == logrus.DebugLevel && m > 1000
	if showProgressBar {
		bar.Start()
		defer bar.Finish()
	}

	firstSkipped := -1
	pivotRow := 0
	for c := k; c < n && pivotRow < m; c++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if work.At(pivotRow, c) == 0 {
			if r := findPivotRow(work, pivotRow, c); r != -1 {
				work.SwapRows(pivotRow, r)
				form.record(Event{Kind: RowSwap, Column: c, PivotRow: pivotRow, With: r})
			} else if col, ok := FindSwapColumn(work, pivotRow, c, m); ok {
				work.SwapColumns(c, col)
				form.Permutation.Swap(c, col)
				form.record(Event{Kind: ColumnSwap, Column: c, PivotRow: pivotRow, With: col})
			} else {
				form.record(Event{Kind: ColumnSkipped, Column: c, PivotRow: pivotRow, With: -1})
				if firstSkipped == -1 {
					firstSkipped = c
				}
				continue
			}
		}

		eliminateOtherRows(ctx, pivotRow, c, work, threads)
		pivotRow++
		bar.Increment()
	}

	form.Rank = pivotRow
	if pivotRow < m {
		if firstSkipped == -1 {
			firstSkipped = n - 1
		}
		err := &gf2.RankDeficientError{Column: firstSkipped, Pivots: pivotRow, Rows: m}
		logrus.WithFields(logrus.Fields{"column": firstSkipped, "pivots": pivotRow, "rows": m}).Debug("rank deficient")
		return nil, err
	}

	if m == 0 {
		form.PT = mat.CSRMat(0, k)
	} else {
		form.PT = work.Slice(0, 0, m, k)
	}
	logrus.Debugf("Gaussian-Jordan Elimination complete")
	return form, nil
}

func (s *SystematicForm) record(e Event) {
	s.Events = append(s.Events, e)
	if e.Kind == RowSwap {
		return
	}
	logrus.WithFields(logrus.Fields{"column": e.Column, "pivotRow": e.PivotRow, "with": e.With}).Debug(e.Kind.String())
}

//parallelRows is the fewest rows to clear before the work is spread over the pool.
const parallelRows = 64

//eliminateOtherRows clears column c from every row except pivotRow. Each task only writes
// its own row of H and pivotRow is never written.
func eliminateOtherRows(ctx context.Context, pivotRow, c int, H mat.SparseMat, threads int) {
	pivots := make([]int, 0)
	for _, r := range H.Column(c).NonzeroArray() {
		if r != pivotRow {
			pivots = append(pivots, r)
		}
	}
	if len(pivots) == 0 {
		return
	}
	if len(pivots) < parallelRows || threads == 1 {
		for _, r := range pivots {
			H.AddRows(r, pivotRow, r)
		}
		return
	}

	pool := threadpool.NewFixedSize(ctx, threads, len(pivots))
	for _, index := range pivots {
		pIndex := index
		pool.Add(func() {
			H.AddRows(pIndex, pivotRow, pIndex)
		})
	}
	pool.Wait()
}

//CalculateRank returns the GF(2) rank of H.
func CalculateRank(ctx context.Context, H mat.SparseMat) int {
	if H == nil {
		return -1
	}
	tmp := mat.CSRMatCopy(H)
	rows, cols := tmp.Dims()

	rank := 0
	for c := 0; c < cols && rank < rows; c++ {
		select {
		case <-ctx.Done():
			return -1
		default:
		}
		pivot := -1
		for r := rank; r < rows; r++ {
			if tmp.At(r, c) == 1 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		tmp.SwapRows(rank, pivot)
		for r := rank + 1; r < rows; r++ {
			if tmp.At(r, c) == 1 {
				tmp.AddRows(r, rank, r)
			}
		}
		rank++
	}
	return rank
}
