package hamming

import (
	"fmt"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/spf13/cobra"
)

var (
	ParityBits uint
	Threads    uint
)

var HammingRun = func(cmd *cobra.Command, args []string) error {
	h, err := hamming.New(cmd.Context(), int(ParityBits), int(Threads))
	if err != nil {
		return fmt.Errorf("unable to create hamming code: %w", err)
	}

	return tools.SaveLinearBlockECC(args[0], h)
}
