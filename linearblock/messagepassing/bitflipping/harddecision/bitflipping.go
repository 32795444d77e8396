package harddecision

import (
	mat "github.com/nathanhack/sparsemat"
)

//DefaultMaxIterations is the iteration budget used when none is configured.
const DefaultMaxIterations = 20

type BitFlippingAlg interface {
	Flip(currentSyndromes mat.SparseVector, currentCodeword mat.SparseVector) (nextCodeword mat.SparseVector, done bool)
	Reset() //resets internal state for next codeword
}

//Run decodes codeword with alg, checking the syndrome before every flip. It returns the
// final codeword, the number of flip rounds and whether every check is satisfied.
func Run(alg BitFlippingAlg, H mat.SparseMat, codeword mat.SparseVector, maxIter int) (result mat.SparseVector, iterations int, converged bool) {
	alg.Reset()
	result = mat.CSRVecCopy(codeword)
	for iterations = 0; ; iterations++ {
		syndromes := syndrome(H, result)
		if syndromes.IsZero() {
			return result, iterations, true
		}
		if iterations >= maxIter {
			return result, iterations, false
		}

		var done bool
		result, done = alg.Flip(syndromes, result)
		if done {
			return result, iterations, syndrome(H, result).IsZero()
		}
	}
}

func BitFlipping(bitFlippingAlg BitFlippingAlg, H mat.SparseMat, codeword mat.SparseVector, maxIter int) (result mat.SparseVector) {
	result, _, _ = Run(bitFlippingAlg, H, codeword, maxIter)
	return result
}

//syndrome returns H·codeword.
func syndrome(H mat.SparseMat, codeword mat.SparseVector) mat.SparseVector {
	rows, _ := H.Dims()
	return mat.CSRVec(rows).MatMul(H, codeword)
}

//checksOfBits lists for each bit the checks of H it participates in.
func checksOfBits(H mat.SparseMat) [][]int {
	rows, cols := H.Dims()
	result := make([][]int, cols)
	for r := 0; r < rows; r++ {
		for _, c := range H.Row(r).NonzeroArray() {
			result[c] = append(result[c], r)
		}
	}
	return result
}

//unsatisfiedCount returns |checks ∩ syndromes|, both sorted.
func unsatisfiedCount(checks, syndromes []int) int {
	count := 0
	for i, j := 0, 0; i < len(checks) && j < len(syndromes); {
		if checks[i] == syndromes[j] {
			count++
			i++
			j++
		} else if checks[i] < syndromes[j] {
			i++
		} else {
			j++
		}
	}
	return count
}
