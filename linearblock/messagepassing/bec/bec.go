package bec

import "fmt"

//ErasureBit is a received bit that is either known or erased.
type ErasureBit int

const (
	Zero ErasureBit = iota
	One
	Erased
)

func (b ErasureBit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	case Erased:
		return "e"
	}
	return fmt.Sprintf("ErasureBit(%d)", int(b))
}

type BECFlippingAlg interface {
	Flip(currentCodeword []ErasureBit) (nextCodeword []ErasureBit, done bool)
}

//Flipping runs alg until it reports it is done and returns the resulting codeword.
// The input codeword is left untouched.
func Flipping(alg BECFlippingAlg, codeword []ErasureBit) (result []ErasureBit) {
	result = make([]ErasureBit, len(codeword))
	copy(result, codeword)

	done := false
	for !done {
		result, done = alg.Flip(result)
	}
	return result
}

//Erasures counts the erased bits.
func Erasures(codeword []ErasureBit) int {
	count := 0
	for _, b := range codeword {
		if b == Erased {
			count++
		}
	}
	return count
}
