package gallager

import (
	"fmt"
	"reflect"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"
	mat "github.com/nathanhack/sparsemat"
	"github.com/spf13/cobra"
)

var (
	Options bsc.Options
	MaxIter uint
)

var GallagerRun = func(cmd *cobra.Command, args []string) error {
	return bsc.Simulate(cmd.Context(), args, typeInfo(), Options, correction)
}

func typeInfo() string {
	t := reflect.TypeOf(harddecision.Gallager{})
	return fmt.Sprintf("BSC:%v/%v", t.PkgPath(), t.Name())
}

func correction(ecc *linearblock.LinearBlock) benchmarking.BinarySymmetricChannelCorrection {
	return func(originalCodeword, channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector) {
		//the alg keeps state so each codeword gets its own
		alg := &harddecision.Gallager{H: ecc.H}
		return harddecision.BitFlipping(alg, ecc.H, channelInducedCodeword, int(MaxIter))
	}
}
