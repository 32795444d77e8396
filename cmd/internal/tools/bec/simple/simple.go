package simple

import (
	"fmt"
	"reflect"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bec"
	"github.com/nathanhack/ldpc/linearblock"
	bec2 "github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec/iterative"
	"github.com/spf13/cobra"
)

var Options bec.Options

var BecRun = func(cmd *cobra.Command, args []string) error {
	return bec.Simulate(cmd.Context(), args, typeInfo(), Options, correction)
}

func typeInfo() string {
	t := reflect.TypeOf(iterative.Simple{})
	return fmt.Sprintf("BEC:%v/%v", t.PkgPath(), t.Name())
}

func correction(ecc *linearblock.LinearBlock) benchmarking.BinaryErasureChannelCorrection {
	return func(originalCodeword, channelInducedCodeword []bec2.ErasureBit) (fixedChannelInducedCodeword []bec2.ErasureBit) {
		alg := &iterative.Simple{H: ecc.H}
		return bec2.Flipping(alg, channelInducedCodeword)
	}
}
