package hamming

import (
	"context"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestNew(t *testing.T) {
	tests := []struct {
		paritySymbols int
		k, n          int
	}{
		{3, 4, 7},
		{4, 11, 15},
		{5, 26, 31},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := New(context.Background(), test.paritySymbols, 0)
			if err != nil {
				t.Fatalf("expected no error found :%v", err)
			}

			if !actual.Validate() {
				t.Fatalf("expected valid linearblock code")
			}
			if actual.MessageLength() != test.k || actual.CodewordLength() != test.n {
				t.Fatalf("expected (%v,%v) but found (%v,%v)", test.k, test.n, actual.MessageLength(), actual.CodewordLength())
			}
		})
	}
}

func TestNewTooSmall(t *testing.T) {
	if _, err := New(context.Background(), 2, 0); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestEncodeDecode(t *testing.T) {
	lb, err := New(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}

	for msg := 0; msg < 16; msg++ {
		message := mat.CSRVec(4)
		for b := 0; b < 4; b++ {
			message.Set(b, msg>>uint(b))
		}
		codeword := lb.Encode(message)
		if !lb.Syndrome(codeword).IsZero() {
			t.Fatalf("expected zero syndrome for %v", codeword)
		}
		actual := lb.Decode(codeword)
		if !message.Equals(actual) {
			t.Fatalf("expected %v but found %v", message, actual)
		}
	}
}
