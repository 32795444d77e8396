package harddecision

import (
	"context"
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

//State is where a batch decode ended up.
type State int

const (
	Running State = iota
	Converged
	Exhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

//Batch decodes many codewords at once with the majority flip rule: every bit sharing the
// most unsatisfied checks of its frame is flipped in the same round.
type Batch struct {
	H       mat.SparseMat // M×N
	MaxIter int
	Threads int  // <=0 uses all CPUs
	InPlace bool // when false the caller's codewords are left untouched

	checks    [][]int
	checksFor mat.SparseMat
}

//NewBatch creates a decoder from the transposed N×M check matrix.
func NewBatch(HT mat.SparseMat, maxIter, threads int) *Batch {
	H := HT.T()
	return &Batch{
		H:         H,
		MaxIter:   maxIter,
		Threads:   threads,
		InPlace:   true,
		checks:    rowSupports(H),
		checksFor: H,
	}
}

//Result of a batch decode. Syndromes holds the count of unsatisfied checks of each frame
// when it stopped, a frame was repaired iff its count is 0.
type Result struct {
	State           State
	Iterations      int
	Codewords       mat.SparseMat
	Syndromes       []int
	FrameIterations []int
	Flips           int
}

//Converged reports whether frame i satisfies every check.
func (r *Result) Converged(i int) bool {
	return r.Syndromes[i] == 0
}

//Unconverged returns the frames with unsatisfied checks.
func (r *Result) Unconverged() []int {
	result := make([]int, 0)
	for i, s := range r.Syndromes {
		if s != 0 {
			result = append(result, i)
		}
	}
	return result
}

//rowSupports lists the bits of every check of H.
func rowSupports(H mat.SparseMat) [][]int {
	rows, _ := H.Dims()
	result := make([][]int, rows)
	for m := range result {
		result[m] = H.Row(m).NonzeroArray()
	}
	return result
}

//Decode runs the batch until every frame converges or MaxIter flip rounds have passed.
// A converged frame is never flipped again, so each frame is run to its own end on a
// worker and the batch ends after the slowest frame.
func (b *Batch) Decode(ctx context.Context, codewords mat.SparseMat) (*Result, error) {
	if b.H == nil {
		return nil, fmt.Errorf("batch decoder requires a check matrix")
	}
	_, n := b.H.Dims()
	frames, cols := codewords.Dims()
	if cols != n {
		return nil, fmt.Errorf("%w: codewords have %v bits but the check matrix has %v", gf2.ErrDimensionMismatch, cols, n)
	}
	if b.MaxIter < 0 {
		return nil, fmt.Errorf("max iterations must be >=0 but found %v", b.MaxIter)
	}
	checks := b.checks
	if b.checksFor != b.H {
		checks = rowSupports(b.H)
	}

	result := &Result{
		State:           Running,
		Codewords:       codewords,
		Syndromes:       make([]int, frames),
		FrameIterations: make([]int, frames),
	}
	if !b.InPlace {
		result.Codewords = mat.CSRMatCopy(codewords)
	}

	flips := make([]int, frames)
	pool := threadpool.NewFixedSize(ctx, b.Threads, frames)
	for f := 0; f < frames; f++ {
		frame := f
		pool.Add(func() {
			bits := result.Codewords.Row(frame)
			result.FrameIterations[frame], result.Syndromes[frame], flips[frame] = b.decodeFrame(checks, bits)
			result.Codewords.SetRow(frame, bits)
		})
	}
	pool.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.State = Converged
	for f := 0; f < frames; f++ {
		result.Flips += flips[f]
		if result.FrameIterations[f] > result.Iterations {
			result.Iterations = result.FrameIterations[f]
		}
		if result.Syndromes[f] != 0 {
			result.State = Exhausted
		}
	}

	logrus.WithFields(logrus.Fields{
		"frames":     frames,
		"state":      result.State,
		"iterations": result.Iterations,
		"flips":      result.Flips,
	}).Debug("batch decoded")
	return result, nil
}

//decodeFrame flips bits of one frame in place.
func (b *Batch) decodeFrame(checks [][]int, frame mat.SparseVector) (iterations, syndrome, flips int) {
	bits := make([]int, frame.Len())
	for _, v := range frame.NonzeroArray() {
		bits[v] = 1
	}
	defer func() {
		for v, bit := range bits {
			frame.Set(v, bit)
		}
	}()

	votes := make([]int, len(bits))
	unsatisfied := make([]int, 0, len(checks))
	for iterations = 0; ; iterations++ {
		unsatisfied = unsatisfied[:0]
		for m, vars := range checks {
			parity := 0
			for _, v := range vars {
				parity ^= bits[v]
			}
			if parity == 1 {
				unsatisfied = append(unsatisfied, m)
			}
		}
		if len(unsatisfied) == 0 || iterations == b.MaxIter {
			return iterations, len(unsatisfied), flips
		}

		for i := range votes {
			votes[i] = 0
		}
		for _, m := range unsatisfied {
			for _, v := range checks[m] {
				votes[v]++
			}
		}

		max := slices.Max(votes)
		for v, count := range votes {
			if count == max {
				bits[v] ^= 1
				flips++
			}
		}
	}
}
