package gf2

import (
	"bytes"
	"errors"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestBinary_RoundTrip(t *testing.T) {
	m := mat.CSRMat(3, 5, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 1, 1, 1, 0, 0)

	buf := bytes.Buffer{}
	if err := WriteBinary(&buf, m); err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), Bytes(m)) {
		t.Fatalf("expected %v but found %v", Bytes(m), buf.Bytes())
	}

	actual, err := ReadBinary(&buf, 3, 5)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if !actual.Equals(m) {
		t.Fatalf("expected \n%v\n but found \n%v\n", m, actual)
	}
}

func TestReadBinary_Short(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte{1, 0, 1}), 2, 2)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected %v but found %v", ErrMalformedInput, err)
	}
}

func TestReadBinary_Shape(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader(nil), 1<<62, 1<<62)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected %v but found %v", ErrMalformedInput, err)
	}
}
