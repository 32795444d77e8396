package gce

import (
	"fmt"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/ldpc/gce"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	MessageSize  uint
	CodewordSize uint
	Girth        uint
	Iter         uint
	Threads      uint
	Force        bool
)

var GCERun = func(cmd *cobra.Command, args []string) error {
	if CodewordSize <= MessageSize {
		return fmt.Errorf("codeword size (%v) must be larger than the message size (%v)", CodewordSize, MessageSize)
	}

	//every improvement is saved so a long search can be stopped early
	checkpoint := func(currentBest *linearblock.LinearBlock) {
		if err := tools.SaveLinearBlockECC(args[0], currentBest); err != nil {
			logrus.Errorf("checkpoint failed: %v", err)
		}
	}

	checkNodes := int(CodewordSize - MessageSize)
	l, err := gce.Search(cmd.Context(), checkNodes, int(CodewordSize), int(Girth), int(Iter), int(Threads), Force, checkpoint)
	if err != nil {
		return fmt.Errorf("unable to create GCE LDPC: %w", err)
	}

	return tools.SaveLinearBlockECC(args[0], l)
}
