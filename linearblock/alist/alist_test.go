package alist

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

const weakParity = `8 4
3 4
3 3 3 3 0 0 0 0
3 3 3 3
1 3 4
1 2 4
1 2 3
2 3 4
0 0 0
0 0 0
0 0 0
0 0 0
1 2 3 0
2 3 4 0
1 3 4 0
1 2 4 0
`

const weakParityMinimal = `8 4
3 3
3 3 3 3 0 0 0 0
3 3 3 3
1 3 4
1 2 4
1 2 3
2 3 4
0 0 0
0 0 0
0 0 0
0 0 0
1 2 3
2 3 4
1 3 4
1 2 4
`

func TestReadMatrix(t *testing.T) {
	expected := mat.CSRMat(4, 8,
		1, 1, 1, 0, 0, 0, 0, 0,
		0, 1, 1, 1, 0, 0, 0, 0,
		1, 0, 1, 1, 0, 0, 0, 0,
		1, 1, 0, 1, 0, 0, 0, 0,
	)
	actual, err := ReadMatrix(strings.NewReader(weakParity))
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !expected.Equals(actual) {
		t.Fatalf("expected \n%v\n but found \n%v\n", expected, actual)
	}

	lb, err := linearblock.New(context.Background(), actual, 0)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !lb.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
}

func TestReadMatrixRankDeficient(t *testing.T) {
	input := strings.Replace(weakParity, "2 3 4 0\n1 3 4 0", "1 2 3 0\n1 3 4 0", 1)
	H, err := ReadMatrix(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	_, err = linearblock.New(context.Background(), H, 0)
	if !errors.Is(err, gf2.ErrRankDeficient) {
		t.Fatalf("expected %v but found %v", gf2.ErrRankDeficient, err)
	}
	var rde *gf2.RankDeficientError
	if !errors.As(err, &rde) || rde.Column != 5 {
		t.Fatalf("expected column 5 but found %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"",
		"8 4 3",
		"8 4 3 4 3 3 3",
		weakParity[:len(weakParity)-4],
		strings.Replace(weakParity, "1 2 4 0", "1 2 x 0", 1),
		strings.Replace(weakParity, "1 2 4 0", "1 2 9 0", 1),
		"-1 4 3 4",
		"4611686018427387904 1 1 1 1",
		"1 4611686018427387904 1 1",
		"16777216 16777216 16777216 16777216 1",
		"8 4 5 4",
		"8 4 3 9",
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			H, err := ReadMatrix(strings.NewReader(test))
			if H != nil {
				t.Fatalf("expected nil but found %v", H)
			}
			if !errors.Is(err, gf2.ErrMalformedInput) {
				t.Fatalf("expected %v but found %v", gf2.ErrMalformedInput, err)
			}
		})
	}
}

func TestDescription_MatrixShape(t *testing.T) {
	tests := []*Description{
		{Rows: 1 << 62, Cols: 1},
		{Rows: 1, Cols: -1},
		{Rows: 2, Cols: 2, RowConnections: [][]int{{1, 2}}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := test.Matrix()
			if !errors.Is(err, gf2.ErrMalformedInput) {
				t.Fatalf("expected %v but found %v", gf2.ErrMalformedInput, err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	H, err := ReadMatrix(strings.NewReader(weakParity))
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	buf := bytes.Buffer{}
	if err := Write(&buf, H); err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if buf.String() != weakParityMinimal {
		t.Fatalf("expected \n%v\n but found \n%v\n", weakParityMinimal, buf.String())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	H := mat.CSRMat(3, 7, 1, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1)
	buf := bytes.Buffer{}
	if err := Write(&buf, H); err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	d, err := Parse(&buf)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if d.MaxRowWeight != 4 || d.MaxColWeight != 3 {
		t.Fatalf("expected (3,4) but found (%v,%v)", d.MaxColWeight, d.MaxRowWeight)
	}
	actual, err := d.Matrix()
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !H.Equals(actual) {
		t.Fatalf("expected \n%v\n but found \n%v\n", H, actual)
	}
}
