package harddecision

import (
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

//Majority flips every bit that shares the most unsatisfied checks, all ties at once.
type Majority struct {
	H        mat.SparseMat
	votes    []int
	rowCache [][]int
}

func (m *Majority) Reset() {
	//nothing to do here
}

func (m *Majority) Flip(currentSyndromes mat.SparseVector, currentCodeword mat.SparseVector) (nextCodeword mat.SparseVector, done bool) {
	if m.H == nil {
		panic("Majority H matrix must be set before calling Algorithm")
	}
	if currentSyndromes.IsZero() {
		return currentCodeword, true
	}
	if m.votes == nil {
		m.votes = make([]int, currentCodeword.Len())
		m.rowCache = checksOfBits(m.H)
	}

	unsatisfied := currentSyndromes.NonzeroArray()
	for n := range m.votes {
		m.votes[n] = unsatisfiedCount(m.rowCache[n], unsatisfied)
	}

	max := slices.Max(m.votes)
	if max == 0 {
		return currentCodeword, true
	}

	nextCodeword = mat.CSRVecCopy(currentCodeword)
	for n, v := range m.votes {
		if v == max {
			nextCodeword.Set(n, nextCodeword.At(n)+1)
		}
	}
	return nextCodeword, false
}
