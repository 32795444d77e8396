package tools

import (
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
)

func TestFramesRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "frames.bin")
	expected := mat.CSRMat(3, 5,
		1, 0, 1, 1, 0,
		0, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	)

	err := WriteFrames(filename, expected)
	if err != nil {
		t.Fatal(err)
	}

	actual, err := ReadFrames(filename, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !actual.Equals(expected) {
		t.Fatalf("expected \n%v but found \n%v", expected, actual)
	}
}

func TestReadFramesLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "frames.bin")
	err := WriteFrames(filename, mat.CSRMat(2, 5))
	if err != nil {
		t.Fatal(err)
	}

	for i, frameLen := range []int{0, 3, 4} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := ReadFrames(filename, frameLen)
			if !errors.Is(err, gf2.ErrDimensionMismatch) {
				t.Fatalf("expected %v but found %v", gf2.ErrDimensionMismatch, err)
			}
		})
	}
}

func TestResultsRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "results.json")

	missing, err := LoadResults(filename)
	if err != nil || missing != nil {
		t.Fatalf("expected nil but found %v %v", missing, err)
	}

	stats := benchmarking.Stats{}
	stats.ChannelCodewordError.Update(0.25)
	expected := &SimulationStats{
		TypeInfo: "BSC:test",
		ECCInfo:  Md5Sum(mat.CSRIdentity(3)),
		Stats:    map[float64]benchmarking.Stats{0.1: stats, 0.05: {}},
	}

	err = SaveResults(filename, expected)
	if err != nil {
		t.Fatal(err)
	}
	actual, err := LoadResults(filename)
	if err != nil {
		t.Fatal(err)
	}
	if actual.TypeInfo != expected.TypeInfo || actual.ECCInfo != expected.ECCInfo || len(actual.Stats) != 2 {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
	codeword := actual.Stats[0.1].ChannelCodewordError
	if codeword.Count != 1 || codeword.Mean != 0.25 {
		t.Fatalf("expected %v but found %v", stats.ChannelCodewordError, codeword)
	}

	_, probabilities, err := LoadAllResults([]string{filename, filename})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(probabilities, []float64{0.05, 0.1}) {
		t.Fatalf("expected %v but found %v", []float64{0.05, 0.1}, probabilities)
	}
}

func TestLoadAllResultsMissing(t *testing.T) {
	_, _, err := LoadAllResults([]string{filepath.Join(t.TempDir(), "missing.json")})
	if err == nil {
		t.Fatalf("expected an error")
	}
	_, _, err = LoadAllResults(nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestMd5Sum(t *testing.T) {
	a := Md5Sum(mat.CSRIdentity(4))
	b := Md5Sum(mat.CSRIdentity(4))
	c := Md5Sum(mat.CSRMat(4, 4))
	if a != b {
		t.Fatalf("expected %v but found %v", a, b)
	}
	if a == c {
		t.Fatalf("expected different sums for different matrices")
	}
}
