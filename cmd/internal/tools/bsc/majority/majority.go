package majority

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

var MajorityRun = func(cmd *cobra.Command, args []string) error {
	return bsc.Simulate(cmd.Context(), args, typeInfo(), Options, correction)
}

func typeInfo() string {
	t := reflect.TypeOf(harddecision.Majority{})
	return fmt.Sprintf("BSC:%v/%v", t.PkgPath(), t.Name())
}

func correction(ecc *linearblock.LinearBlock) benchmarking.BinarySymmetricChannelCorrection {
	return func(originalCodeword, channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector) {
		alg := &harddecision.Majority{H: ecc.H}
		return harddecision.BitFlipping(alg, ecc.H, channelInducedCodeword, int(MaxIter))
	}
}
