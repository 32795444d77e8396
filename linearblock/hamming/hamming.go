package hamming

import (
	"context"
	"fmt"

	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

//ParityMatrix returns the paritySymbols×(2^paritySymbols-1) check matrix whose column
// i-1 is the binary form of i.
func ParityMatrix(paritySymbols int) mat.SparseMat {
	n := 1<<uint(paritySymbols) - 1
	H := mat.CSRMat(paritySymbols, n)
	for i := 1; i <= n; i++ {
		for j := 0; j < paritySymbols; j++ {
			if i&(1<<uint(j)) > 0 {
				H.Set(j, i-1, 1)
			}
		}
	}
	return H
}

// New creates the systematic hamming code with paritySymbols number of parity symbols.
// Hamming codes can detect up to two-bit errors or correct one-bit errors without
// detection of uncorrected errors.
func New(ctx context.Context, paritySymbols int, threads int) (*linearblock.LinearBlock, error) {
	if paritySymbols < 3 {
		return nil, fmt.Errorf("hamming codes require >=3 parity symbols but found %v", paritySymbols)
	}

	return linearblock.New(ctx, ParityMatrix(paritySymbols), threads)
}
