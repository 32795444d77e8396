package gallager

import (
	"context"
	"strconv"
	"testing"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		m, wc, wr, cycle int
	}{
		{12, 3, 4, 4},
		{30, 3, 6, 4},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			lb, err := Search(context.Background(), test.m, test.wc, test.wr, test.cycle, 1000, 0)
			if err != nil {
				t.Fatalf("expected no error but found %v", err)
			}
			if !lb.Validate() {
				t.Fatalf("expected valid linearblock code")
			}
			expected := test.m / test.wc * test.wr
			if lb.CodewordLength() != expected {
				t.Fatalf("expected %v but found %v", expected, lb.CodewordLength())
			}
		})
	}
}

func TestSearchArguments(t *testing.T) {
	tests := []struct {
		m, wc, wr, cycle int
	}{
		{12, 2, 4, 4},
		{12, 4, 4, 4},
		{10, 3, 4, 4},
		{12, 3, 4, 5},
		{12, 3, 4, 2},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := Search(context.Background(), test.m, test.wc, test.wr, test.cycle, 10, 0)
			if err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
