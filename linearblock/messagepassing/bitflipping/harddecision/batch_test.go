package harddecision

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/ldpc/qc"
	mat "github.com/nathanhack/sparsemat"
)

//arrayCode is the 15×25 array code (z=5, column weight 3, girth 6) with a generator
// derived from its independent rows. H keeps every check.
func arrayCode(t testing.TB) *linearblock.LinearBlock {
	H, err := qc.Expand(context.Background(), qc.Array(5, 3, 5), 0)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	code, err := linearblock.NewRedundant(context.Background(), H, 0)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if !code.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
	return code
}

func randomCodewords(code *linearblock.LinearBlock, frames int, rnd *rand.Rand) mat.SparseMat {
	k := code.MessageLength()
	messages := mat.CSRMat(frames, k)
	for f := 0; f < frames; f++ {
		for i := 0; i < k; i++ {
			messages.Set(f, i, rnd.Intn(2))
		}
	}
	codewords, _ := code.EncodeBatch(messages)
	return codewords
}

func flip(m mat.SparseMat, r, c int) {
	m.Set(r, c, m.At(r, c)+1)
}

func TestBatch_ZeroErrors(t *testing.T) {
	code := arrayCode(t)
	codewords := randomCodewords(code, 16, rand.New(rand.NewSource(1)))
	expected := mat.CSRMatCopy(codewords)

	result, err := NewBatch(code.H.T(), DefaultMaxIterations, 0).Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if result.State != Converged || result.Iterations != 0 || result.Flips != 0 {
		t.Fatalf("expected (converged,0,0) but found (%v,%v,%v)", result.State, result.Iterations, result.Flips)
	}
	if !expected.Equals(result.Codewords) {
		t.Fatalf("expected \n%v\n but found \n%v\n", expected, result.Codewords)
	}
}

func TestBatch_SingleError(t *testing.T) {
	code := arrayCode(t)
	_, n := code.H.Dims()
	codewords := randomCodewords(code, n, rand.New(rand.NewSource(2)))
	expected := mat.CSRMatCopy(codewords)
	//frame i has bit i flipped
	for f := 0; f < n; f++ {
		flip(codewords, f, f)
	}

	result, err := NewBatch(code.H.T(), DefaultMaxIterations, 0).Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if result.State != Converged {
		t.Fatalf("expected %v but found %v", Converged, result.State)
	}
	if result.Iterations > 5 {
		t.Fatalf("expected at most 5 iterations but found %v", result.Iterations)
	}
	if result.Flips != n {
		t.Fatalf("expected %v but found %v", n, result.Flips)
	}
	if !expected.Equals(result.Codewords) {
		t.Fatalf("expected \n%v\n but found \n%v\n", expected, result.Codewords)
	}
	if len(result.Unconverged()) != 0 {
		t.Fatalf("expected no unconverged frames but found %v", result.Unconverged())
	}
}

func TestBatch_Deterministic(t *testing.T) {
	code := arrayCode(t)
	_, n := code.H.Dims()
	rnd := rand.New(rand.NewSource(3))
	codewords := randomCodewords(code, 32, rnd)
	for f := 0; f < 32; f++ {
		for e := 0; e < 3; e++ {
			flip(codewords, f, rnd.Intn(n))
		}
	}
	input := mat.CSRMatCopy(codewords)

	decoder := NewBatch(code.H.T(), DefaultMaxIterations, 0)
	decoder.InPlace = false
	first, err := decoder.Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	second, err := decoder.Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	if !input.Equals(codewords) {
		t.Fatalf("expected the input batch to be untouched")
	}
	if !first.Codewords.Equals(second.Codewords) || first.State != second.State || first.Iterations != second.Iterations || first.Flips != second.Flips {
		t.Fatalf("expected %v but found %v", first, second)
	}
	for f := range first.Syndromes {
		if first.Syndromes[f] != second.Syndromes[f] {
			t.Fatalf("expected %v but found %v", first.Syndromes, second.Syndromes)
		}
	}
}

func TestBatch_MatchesMajority(t *testing.T) {
	code := arrayCode(t)
	_, n := code.H.Dims()
	rnd := rand.New(rand.NewSource(4))
	codewords := randomCodewords(code, 24, rnd)
	for f := 0; f < 24; f++ {
		for e := 0; e <= f%4; e++ {
			flip(codewords, f, rnd.Intn(n))
		}
	}
	input := mat.CSRMatCopy(codewords)

	result, err := NewBatch(code.H.T(), 8, 1).Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	alg := &Majority{H: code.H}
	for f := 0; f < 24; f++ {
		t.Run(strconv.Itoa(f), func(t *testing.T) {
			actual, iterations, converged := Run(alg, code.H, input.Row(f), 8)
			if !actual.Equals(result.Codewords.Row(f)) {
				t.Fatalf("expected %v but found %v", result.Codewords.Row(f), actual)
			}
			if iterations != result.FrameIterations[f] || converged != result.Converged(f) {
				t.Fatalf("expected (%v,%v) but found (%v,%v)", result.FrameIterations[f], result.Converged(f), iterations, converged)
			}
		})
	}
}

func TestBatch_SharedDecoder(t *testing.T) {
	code := arrayCode(t)
	_, n := code.H.Dims()
	decoder := NewBatch(code.H.T(), DefaultMaxIterations, 2)
	decoder.InPlace = false

	const workers = 8
	expected := make([]mat.SparseMat, workers)
	inputs := make([]mat.SparseMat, workers)
	for w := 0; w < workers; w++ {
		expected[w] = randomCodewords(code, 8, rand.New(rand.NewSource(int64(10+w))))
		inputs[w] = mat.CSRMatCopy(expected[w])
		for f := 0; f < 8; f++ {
			flip(inputs[w], f, (w+f)%n)
		}
	}

	results := make([]*Result, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], errs[w] = decoder.Decode(context.Background(), inputs[w])
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			t.Fatalf("expected no error but found %v", errs[w])
		}
		if results[w].State != Converged {
			t.Fatalf("expected %v but found %v", Converged, results[w].State)
		}
		if !expected[w].Equals(results[w].Codewords) {
			t.Fatalf("expected \n%v\n but found \n%v\n", expected[w], results[w].Codewords)
		}
	}
}

func TestBatch_ReplacedH(t *testing.T) {
	code := arrayCode(t)
	m, n := code.H.Dims()
	codewords := randomCodewords(code, 2, rand.New(rand.NewSource(7)))
	flip(codewords, 0, 4)

	decoder := NewBatch(code.H.T(), DefaultMaxIterations, 0)
	decoder.H = mat.CSRMat(m, n)
	result, err := decoder.Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if result.State != Converged || result.Iterations != 0 || result.Flips != 0 {
		t.Fatalf("expected (converged,0,0) but found (%v,%v,%v)", result.State, result.Iterations, result.Flips)
	}
}

func TestBatch_Exhausted(t *testing.T) {
	code := arrayCode(t)
	codewords := randomCodewords(code, 2, rand.New(rand.NewSource(5)))
	flip(codewords, 1, 3)

	result, err := NewBatch(code.H.T(), 0, 0).Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if result.State != Exhausted || result.Iterations != 0 || result.Flips != 0 {
		t.Fatalf("expected (exhausted,0,0) but found (%v,%v,%v)", result.State, result.Iterations, result.Flips)
	}
	if !result.Converged(0) || result.Converged(1) || result.Syndromes[1] != 3 {
		t.Fatalf("expected [0 3] but found %v", result.Syndromes)
	}
}

func TestBatch_DimensionMismatch(t *testing.T) {
	code := arrayCode(t)
	_, err := NewBatch(code.H.T(), DefaultMaxIterations, 0).Decode(context.Background(), mat.CSRMat(2, 24))
	if !errors.Is(err, gf2.ErrDimensionMismatch) {
		t.Fatalf("expected %v but found %v", gf2.ErrDimensionMismatch, err)
	}
}

func TestBatch_PaddedLayout(t *testing.T) {
	code := arrayCode(t)
	layout, err := linearblock.HardwareLayout(code, 8, 32)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}

	message := mat.CSRVec(layout.KPadded)
	for i := 0; i < layout.K; i += 2 {
		message.Set(i, 1)
	}
	codeword, err := layout.Encode(message)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	codewords := gf2.FromRows(layout.NPadded, codeword, codeword)
	flip(codewords, 1, 11)

	result, err := NewBatch(layout.HT, DefaultMaxIterations, 0).Decode(context.Background(), codewords)
	if err != nil {
		t.Fatalf("expected no error but found %v", err)
	}
	if result.State != Converged {
		t.Fatalf("expected %v but found %v", Converged, result.State)
	}
	for f := 0; f < 2; f++ {
		if !codeword.Equals(result.Codewords.Row(f)) {
			t.Fatalf("expected %v but found %v", codeword, result.Codewords.Row(f))
		}
		actual, err := layout.Decode(result.Codewords.Row(f))
		if err != nil {
			t.Fatalf("expected no error but found %v", err)
		}
		if !message.Slice(0, layout.K).Equals(actual) {
			t.Fatalf("expected %v but found %v", message.Slice(0, layout.K), actual)
		}
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Running, "running"},
		{Converged, "converged"},
		{Exhausted, "exhausted"},
		{State(7), "State(7)"},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if test.state.String() != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, test.state)
			}
		})
	}
}

func ExampleBatch_Decode() {
	H, _ := qc.Expand(context.Background(), qc.Array(5, 3, 5), 0)
	codewords := mat.CSRMat(1, 25)
	flip(codewords, 0, 7)

	result, _ := NewBatch(H.T(), DefaultMaxIterations, 1).Decode(context.Background(), codewords)
	fmt.Println(result.State, result.Iterations, result.Codewords.Row(0).IsZero())
	// Output: converged 1 true
}

func BenchmarkBatch_Decode(b *testing.B) {
	code := arrayCode(b)
	_, n := code.H.Dims()
	rnd := rand.New(rand.NewSource(6))
	codewords := randomCodewords(code, 256, rnd)
	for f := 0; f < 256; f++ {
		flip(codewords, f, rnd.Intn(n))
	}
	decoder := NewBatch(code.H.T(), DefaultMaxIterations, 0)
	decoder.InPlace = false
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		decoder.Decode(context.Background(), codewords)
	}
}
