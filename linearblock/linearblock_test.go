package linearblock

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	mat "github.com/nathanhack/sparsemat"
)

func hamming7(t testing.TB) *LinearBlock {
	H := mat.CSRMat(3, 7,
		1, 0, 0, 1, 1, 1, 0,
		0, 1, 0, 1, 0, 1, 1,
		0, 0, 1, 0, 1, 1, 1,
	)
	lb, err := New(context.Background(), H, 0)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	return lb
}

func randomMessage(k int) mat.SparseVector {
	message := mat.CSRVec(k)
	for i := 0; i < k; i++ {
		message.Set(i, rand.Intn(2))
	}
	return message
}

func TestLinearBlock_EncodeDecode(t *testing.T) {
	tests := []struct {
		H mat.SparseMat
	}{
		{mat.CSRMat(3, 7, 1, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1)},
		{ringH()},
		{triangleH()},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			lb, err := New(context.Background(), test.H, 0)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if !lb.Validate() {
				t.Fatalf("expected valid linearblock code")
			}

			for j := 0; j < 20; j++ {
				message := randomMessage(lb.MessageLength())
				codeword := lb.Encode(message)
				if !lb.Syndrome(codeword).IsZero() {
					t.Fatalf("expected zero syndrome for %v", codeword)
				}
				actual := lb.Decode(codeword)
				if !message.Equals(actual) {
					t.Fatalf("expected %v but found %v", message, actual)
				}
			}
		})
	}
}

func TestLinearBlock_New(t *testing.T) {
	H := mat.CSRMat(2, 4, 1, 1, 0, 0, 1, 1, 0, 0)
	_, err := New(context.Background(), H, 0)
	if !errors.Is(err, gf2.ErrRankDeficient) {
		t.Fatalf("expected %v but found %v", gf2.ErrRankDeficient, err)
	}
}

func TestLinearBlock_EncodeBatch(t *testing.T) {
	lb := hamming7(t)
	messages := mat.CSRMat(3, 4, 1, 0, 0, 0, 0, 1, 1, 0, 1, 1, 1, 1)
	codewords, err := lb.EncodeBatch(messages)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	for i := 0; i < 3; i++ {
		expected := lb.Encode(messages.Row(i))
		if !expected.Equals(codewords.Row(i)) {
			t.Fatalf("expected %v but found %v", expected, codewords.Row(i))
		}
	}

	_, err = lb.EncodeBatch(mat.CSRMat(1, 3))
	if !errors.Is(err, gf2.ErrDimensionMismatch) {
		t.Fatalf("expected %v but found %v", gf2.ErrDimensionMismatch, err)
	}
}

func TestLinearBlock_BE(t *testing.T) {
	lb := hamming7(t)
	message := mat.CSRVec(4, 1, 0, 1, 1)
	codeword := lb.EncodeBE(message)
	actual := lb.DecodeBE(codeword)
	for i, b := range actual {
		if int(b) != message.At(i) {
			t.Fatalf("expected %v but found %v", message, actual)
		}
	}
	if bec.Erasures(codeword) != 0 {
		t.Fatalf("expected no erasures")
	}
}

func TestLinearBlock_JSON(t *testing.T) {
	lb := hamming7(t)
	bs, err := json.Marshal(lb)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	var actual LinearBlock
	err = json.Unmarshal(bs, &actual)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !lb.H.Equals(actual.H) || !lb.Processing.G.Equals(actual.Processing.G) {
		t.Fatalf("expected %v but found %v", lb, &actual)
	}
	for i, c := range lb.Processing.HColumnOrder {
		if actual.Processing.HColumnOrder[i] != c {
			t.Fatalf("expected %v but found %v", lb.Processing.HColumnOrder, actual.Processing.HColumnOrder)
		}
	}
	if !actual.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
}

func TestLinearBlock_CodeRate(t *testing.T) {
	lb := hamming7(t)
	if lb.CodeRate() != 4.0/7.0 {
		t.Fatalf("expected %v but found %v", 4.0/7.0, lb.CodeRate())
	}
	if lb.ParitySymbols() != 3 {
		t.Fatalf("expected %v but found %v", 3, lb.ParitySymbols())
	}
}

func BenchmarkLinearBlock_Encode(b *testing.B) {
	lb := hamming7(b)
	message := mat.CSRVec(4, 1, 0, 1, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lb.Encode(message)
	}
}

func TestIndependentRows(t *testing.T) {
	tests := []struct {
		H        mat.SparseMat
		expected mat.SparseMat
	}{
		{
			mat.CSRMat(4, 5, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1),
			mat.CSRMat(3, 5, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 1, 1),
		},
		{mat.CSRMat(2, 3), mat.CSRMat(0, 3)},
		{ringH(), ringH()},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := IndependentRows(context.Background(), test.H)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if !test.expected.Equals(actual) {
				t.Fatalf("expected \n%v\n but found \n%v\n", test.expected, actual)
			}
		})
	}
}

func TestNewRedundant(t *testing.T) {
	H := mat.CSRMat(4, 5,
		1, 1, 0, 0, 0,
		0, 1, 1, 0, 0,
		1, 0, 1, 0, 0,
		0, 0, 0, 1, 1,
	)

	lb, err := NewRedundant(context.Background(), H, 1)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !lb.H.Equals(H) {
		t.Fatalf("expected every check to be kept but found \n%v", lb.H)
	}
	if lb.MessageLength() != 2 {
		t.Fatalf("expected %v but found %v", 2, lb.MessageLength())
	}
	if !lb.Validate() {
		t.Fatalf("expected valid linearblock")
	}

	_, err = New(context.Background(), H, 1)
	if !errors.Is(err, gf2.ErrRankDeficient) {
		t.Fatalf("expected %v but found %v", gf2.ErrRankDeficient, err)
	}
	_, err = NewRedundant(context.Background(), mat.CSRMat(2, 3), 1)
	if !errors.Is(err, gf2.ErrRankDeficient) {
		t.Fatalf("expected %v but found %v", gf2.ErrRankDeficient, err)
	}
}
