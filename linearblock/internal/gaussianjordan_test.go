package internal

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
)

//four checks over eight bits where the last four bits are in no check
func weakParityH() mat.SparseMat {
	return mat.CSRMat(4, 8,
		1, 1, 1, 0, 0, 0, 0, 0,
		0, 1, 1, 1, 0, 0, 0, 0,
		1, 0, 1, 1, 0, 0, 0, 0,
		1, 1, 0, 1, 0, 0, 0, 0,
	)
}

func hamming7H() mat.SparseMat {
	return mat.CSRMat(3, 7,
		1, 0, 0, 1, 1, 1, 0,
		0, 1, 0, 1, 0, 1, 1,
		0, 0, 1, 0, 1, 1, 1,
	)
}

func TestReduce(t *testing.T) {
	tests := []struct {
		input mat.SparseMat
		rank  int
	}{
		{hamming7H(), 3},
		{weakParityH(), 4},
		{mat.CSRMat(2, 4, 1, 1, 1, 0, 0, 1, 1, 1), 2},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			original := mat.CSRMatCopy(test.input)
			form, err := Reduce(context.Background(), test.input, 0)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if !original.Equals(test.input) {
				t.Fatalf("expected input to be unmodified")
			}
			if form.Rank != test.rank {
				t.Fatalf("expected %v but found %v", test.rank, form.Rank)
			}
			if err := form.Permutation.Validate(); err != nil {
				t.Fatalf("expected a valid permutation but found %v", err)
			}

			m, n := test.input.Dims()
			rows, cols := form.PT.Dims()
			if rows != m || cols != n-m {
				t.Fatalf("expected (%v,%v) but found (%v,%v)", m, n-m, rows, cols)
			}

			//the permuted H row reduces to [PT | I]
			reordered := ColumnSwapped(test.input, form.Permutation)
			expected := mat.CSRMat(m, n)
			expected.SetMatrix(form.PT, 0, 0)
			expected.SetMatrix(mat.CSRIdentity(m), 0, n-m)
			if CalculateRank(context.Background(), reordered) != m {
				t.Fatalf("expected the reordered H to keep rank %v", m)
			}
			stacked := mat.CSRMat(2*m, n)
			stacked.SetMatrix(reordered, 0, 0)
			stacked.SetMatrix(expected, m, 0)
			if r := CalculateRank(context.Background(), stacked); r != m {
				t.Fatalf("expected row space of rank %v but found %v", m, r)
			}
		})
	}
}

func TestReduceColumnSwaps(t *testing.T) {
	form, err := Reduce(context.Background(), weakParityH(), 0)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	expected := gf2.Permutation{4, 5, 6, 7, 0, 1, 2, 3}
	for i := range expected {
		if expected[i] != form.Permutation[i] {
			t.Fatalf("expected %v but found %v", expected, form.Permutation)
		}
	}
	if !gf2.IsZero(form.PT) {
		t.Fatalf("expected zero PT but found \n%v", form.PT)
	}

	swaps := 0
	for _, e := range form.Events {
		if e.Kind == ColumnSwap {
			swaps++
		}
	}
	if swaps != 4 {
		t.Fatalf("expected %v but found %v", 4, swaps)
	}
}

func TestReduceRankDeficient(t *testing.T) {
	tests := []struct {
		input  mat.SparseMat
		column int
		pivots int
	}{
		{ //one linearly dependent row
			mat.CSRMat(4, 5, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1),
			4, 3,
		},
		{ //duplicated check
			mat.CSRMat(4, 8,
				1, 1, 1, 0, 0, 0, 0, 0,
				1, 1, 1, 0, 0, 0, 0, 0,
				1, 0, 1, 1, 0, 0, 0, 0,
				1, 1, 0, 1, 0, 0, 0, 0,
			),
			5, 1,
		},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			form, err := Reduce(context.Background(), test.input, 0)
			if form != nil {
				t.Fatalf("expected nil but found %v", form)
			}
			if !errors.Is(err, gf2.ErrRankDeficient) {
				t.Fatalf("expected %v but found %v", gf2.ErrRankDeficient, err)
			}
			var rde *gf2.RankDeficientError
			if !errors.As(err, &rde) {
				t.Fatalf("expected RankDeficientError but found %T", err)
			}
			if rde.Column != test.column || rde.Pivots != test.pivots {
				t.Fatalf("expected (%v,%v) but found (%v,%v)", test.column, test.pivots, rde.Column, rde.Pivots)
			}
		})
	}
}

func TestReduceShape(t *testing.T) {
	_, err := Reduce(context.Background(), mat.CSRMat(3, 3), 0)
	if !errors.Is(err, gf2.ErrDimensionMismatch) {
		t.Fatalf("expected %v but found %v", gf2.ErrDimensionMismatch, err)
	}
}

func TestReduceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reduce(ctx, hamming7H(), 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v but found %v", context.Canceled, err)
	}
}

func TestFindSwapColumn(t *testing.T) {
	tests := []struct {
		row      []int
		target   int
		expected int
		ok       bool
	}{
		{[]int{0, 1, 0, 0, 1, 0}, 3, 1, true}, // info region first
		{[]int{0, 0, 0, 0, 0, 1}, 3, 5, true}, // then after the target
		{[]int{0, 0, 0, 1, 0, 0}, 4, -1, false},
		{[]int{0, 0, 0, 0, 0, 0}, 3, -1, false},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			H := mat.CSRMat(1, len(test.row), test.row...)
			col, ok := FindSwapColumn(H, 0, test.target, 3)
			if col != test.expected || ok != test.ok {
				t.Fatalf("expected (%v,%v) but found (%v,%v)", test.expected, test.ok, col, ok)
			}
		})
	}
}

func TestCalculateRank(t *testing.T) {
	tests := []struct {
		input    mat.SparseMat
		expected int
	}{
		{hamming7H(), 3},
		{mat.CSRMat(4, 5, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1), 3},
		{mat.CSRMat(2, 2), 0},
		{mat.CSRIdentity(70), 70},
		{nil, -1},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := CalculateRank(context.Background(), test.input)
			if actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

//denseH is a random half density matrix, full rank for any realistic seed.
func denseH(rows, cols int, seed int64) mat.SparseMat {
	r := rand.New(rand.NewSource(seed))
	H := mat.CSRMat(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			H.Set(i, j, r.Intn(2))
		}
	}
	return H
}

func TestReduceParallel(t *testing.T) {
	tests := []struct {
		rows, cols int
		seed       int64
	}{
		{128, 160, 1},
		{256, 300, 2},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			H := denseH(test.rows, test.cols, test.seed)

			//a pivot column of a half density matrix has far more than parallelRows ones
			if ones := len(H.Column(test.cols - test.rows).NonzeroArray()); ones < parallelRows {
				t.Fatalf("expected at least %v rows to clear but found %v", parallelRows, ones)
			}

			parallel, err := Reduce(context.Background(), H, 0)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			serial, err := Reduce(context.Background(), H, 1)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}

			if err := parallel.Permutation.Validate(); err != nil {
				t.Fatalf("expected a valid permutation but found %v", err)
			}
			for c := range serial.Permutation {
				if serial.Permutation[c] != parallel.Permutation[c] {
					t.Fatalf("expected %v but found %v", serial.Permutation, parallel.Permutation)
				}
			}
			if !parallel.PT.Equals(serial.PT) {
				t.Fatalf("expected the same PT from the pool and a single thread")
			}

			G := BuildGenerator(parallel)
			if !ValidateHGMatrices(G, H) {
				t.Fatalf("expected G*H.T=0")
			}
		})
	}
}
