package decode

import (
	"errors"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
)

func TestCompare(t *testing.T) {
	golden := mat.CSRMat(3, 4,
		1, 0, 1, 0,
		0, 1, 1, 0,
		1, 1, 1, 1,
	)

	tests := []struct {
		decoded        mat.SparseMat
		frames, errors int
	}{
		{mat.CSRMatCopy(golden), 0, 0},
		{mat.CSRMat(3, 4,
			1, 0, 1, 1,
			0, 1, 1, 0,
			0, 0, 1, 1,
		), 2, 3},
	}

	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			frames, bitErrors, err := Compare(test.decoded, golden)
			if err != nil {
				t.Fatal(err)
			}
			if frames != test.frames || bitErrors != test.errors {
				t.Fatalf("expected %v,%v but found %v,%v", test.frames, test.errors, frames, bitErrors)
			}
		})
	}
}

func TestCompareShape(t *testing.T) {
	_, _, err := Compare(mat.CSRMat(2, 4), mat.CSRMat(3, 4))
	if !errors.Is(err, gf2.ErrDimensionMismatch) {
		t.Fatalf("expected %v but found %v", gf2.ErrDimensionMismatch, err)
	}
}
