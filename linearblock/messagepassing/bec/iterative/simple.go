package iterative

import (
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	mat "github.com/nathanhack/sparsemat"
)

//Simple is the peeling decoder: any check with exactly one erased bit resolves that bit
// to the parity of the others. It repeats until no check makes progress.
type Simple struct {
	H           mat.SparseMat
	checkToVars [][]int
	varToChecks [][]int
}

func (s *Simple) Flip(currentCodeword []bec.ErasureBit) (nextCodeword []bec.ErasureBit, done bool) {
	if s.H == nil {
		panic("Simple BEC flipping algorithm must have the H parity matrix set before using")
	}
	if s.checkToVars == nil {
		s.init()
	}

	nextCodeword = make([]bec.ErasureBit, len(currentCodeword))
	copy(nextCodeword, currentCodeword)

	erasedBits := erasedIndices(nextCodeword)
	for len(erasedBits) > 0 {
		progress := false
		visited := make(map[int]bool)
		for _, erasedBit := range erasedBits {
			for _, check := range s.varToChecks[erasedBit] {
				if visited[check] {
					continue
				}
				visited[check] = true

				if resolve(nextCodeword, s.checkToVars[check]) {
					progress = true
				}
			}
		}

		if !progress {
			break
		}
		erasedBits = erasedIndices(nextCodeword)
	}

	return nextCodeword, true
}

func (s *Simple) init() {
	rows, cols := s.H.Dims()

	s.varToChecks = make([][]int, cols)
	s.checkToVars = make([][]int, rows)
	for c := range s.checkToVars {
		s.checkToVars[c] = s.H.Row(c).NonzeroArray()
		for _, v := range s.checkToVars[c] {
			s.varToChecks[v] = append(s.varToChecks[v], c)
		}
	}
}

func erasedIndices(m []bec.ErasureBit) []int {
	erasedBits := make([]int, 0, len(m))

	for i, r := range m {
		if r == bec.Erased {
			erasedBits = append(erasedBits, i)
		}
	}
	return erasedBits
}

//resolve fills in the erased bit of the check when it is the only one missing.
func resolve(M []bec.ErasureBit, vars []int) bool {
	missing := -1
	value := 0
	for _, b := range vars {
		if M[b] != bec.Erased {
			value ^= int(M[b])
			continue
		}

		//we can only fix a check node with only 1 missing value
		if missing != -1 {
			return false
		}
		missing = b
	}

	if missing == -1 {
		return false
	}
	M[missing] = bec.ErasureBit(value)

	return true
}
