package gallager

import (
	"fmt"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock/ldpc/gallager"
	"github.com/spf13/cobra"
)

var Message uint
var Wc uint
var Wr uint
var Smallest uint
var Iter uint
var Threads uint

var GallagerRun = func(cmd *cobra.Command, args []string) error {
	g, err := gallager.Search(cmd.Context(), int(Message), int(Wc), int(Wr), int(Smallest), int(Iter), int(Threads))
	if err != nil {
		return fmt.Errorf("unable to create gallager LDPC: %w", err)
	}

	if g == nil {
		return fmt.Errorf("unable to create gallager LDPC try again")
	}

	return tools.SaveLinearBlockECC(args[0], g)
}
