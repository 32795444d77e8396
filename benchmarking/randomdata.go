package benchmarking

import (
	"math"
	"math/rand"

	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	mat "github.com/nathanhack/sparsemat"
	mat2 "gonum.org/v1/gonum/mat"
)

// RandomMessage creates a random message of length len.
func RandomMessage(len int) mat.SparseVector {
	message := mat.CSRVec(len)
	for i := 0; i < len; i++ {
		message.Set(i, rand.Intn(2))
	}
	return message
}

// RandomMessageOnesCount creates a random message of length len with a hamming weight equal to onesCount
func RandomMessageOnesCount(len int, onesCount int) mat.SparseVector {
	message := mat.CSRVec(len)
	for message.HammingWeight() < onesCount && message.HammingWeight() < len {
		message.Set(rand.Intn(len), 1)
	}
	return message
}

// RandomFlipBitCount randomly flips min(numberOfBitsToFlip,len(input)) number of bits.
func RandomFlipBitCount(input mat.SparseVector, numberOfBitsToFlip int) mat.SparseVector {
	output := mat.CSRVecCopy(input)
	for _, i := range rand.Perm(input.Len())[:minInt(numberOfBitsToFlip, input.Len())] {
		output.Set(i, output.At(i)+1)
	}
	return output
}

// RandomFlipProbability flips each bit independently with probability p, the binary symmetric channel.
func RandomFlipProbability(input mat.SparseVector, p float64) mat.SparseVector {
	output := mat.CSRVecCopy(input)
	for i := 0; i < input.Len(); i++ {
		if rand.Float64() < p {
			output.Set(i, output.At(i)+1)
		}
	}
	return output
}

// RandomFlipBatch flips numberOfBitsToFlip random bits of every row.
func RandomFlipBatch(codewords mat.SparseMat, numberOfBitsToFlip int) mat.SparseMat {
	output := mat.CSRMatCopy(codewords)
	frames, n := output.Dims()
	for f := 0; f < frames; f++ {
		for _, i := range rand.Perm(n)[:minInt(numberOfBitsToFlip, n)] {
			output.Set(f, i, output.At(f, i)+1)
		}
	}
	return output
}

// RandomErase creates a new slice of ErasureBits with some of them set to Erased given the probabilityOfErasure
func RandomErase(codeword []bec.ErasureBit, probabilityOfErasure float64) []bec.ErasureBit {
	return RandomEraseCount(codeword, int(math.Round(probabilityOfErasure*float64(len(codeword)))))
}

// RandomEraseCount creates a copy of the codeword and randomly sets numberOfBitsToErase of them to Erased
func RandomEraseCount(codeword []bec.ErasureBit, numberOfBitsToErase int) []bec.ErasureBit {
	output := make([]bec.ErasureBit, len(codeword))
	copy(output, codeword)

	for _, i := range rand.Perm(len(codeword))[:minInt(numberOfBitsToErase, len(codeword))] {
		output[i] = bec.Erased
	}
	return output
}

// RandomNoiseBPSK creates a randomizes version of the bpsk vector using the E_b/N_0 passed in
func RandomNoiseBPSK(bpsk mat2.Vector, E_bPerN_0 float64) mat2.Vector {
	//using  σ^2 = N_0/2 and E_b=1
	// we get  σ = sqrt(1/(2*E_bPerN_0))
	σ := math.Sqrt(1 / (2 * E_bPerN_0))
	result := mat2.NewVecDense(bpsk.Len(), nil)
	for i := 0; i < bpsk.Len(); i++ {
		result.SetVec(i, rand.NormFloat64()*σ)
	}
	result.AddVec(result, bpsk)
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
