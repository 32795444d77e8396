package dwbf

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
	Options      bsc.Options
	MaxIter      uint
	Alpha        float64
	EtaThreshold float64
)

var DwbfRun = func(cmd *cobra.Command, args []string) error {
	if Alpha <= 0 || 1 <= Alpha {
		return fmt.Errorf("0<α<1 is required but found %v", Alpha)
	}
	return bsc.Simulate(cmd.Context(), args, typeInfo(), Options, correction)
}

func typeInfo() string {
	t := reflect.TypeOf(harddecision.DWBF_F{})
	return fmt.Sprintf("BSC:%v/%v", t.PkgPath(), t.Name())
}

func correction(ecc *linearblock.LinearBlock) benchmarking.BinarySymmetricChannelCorrection {
	return func(originalCodeword, channelInducedCodeword mat.SparseVector) (fixedChannelInducedCodeword mat.SparseVector) {
		//since this is parallel there is no way to isolate data from one codeword from the next
		// this alg has internal state
		alg := &harddecision.DWBF_F{
			AlphaFactor:  Alpha,
			EtaThreshold: EtaThreshold,
			H:            ecc.H,
		}
		return harddecision.BitFlipping(alg, ecc.H, channelInducedCodeword, int(MaxIter))
	}
}
