package alist

import (
	"fmt"
	"os"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/alist"
	"github.com/spf13/cobra"
)

var (
	Threads   uint
	Redundant bool
)

//AlistRun builds a code from the H matrix described by INPUT_ALIST.
var AlistRun = func(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	H, err := alist.ReadMatrix(f)
	if err != nil {
		return fmt.Errorf("unable to read %v: %w", args[0], err)
	}

	build := linearblock.New
	if Redundant {
		build = linearblock.NewRedundant
	}
	lb, err := build(cmd.Context(), H, int(Threads))
	if err != nil {
		return fmt.Errorf("unable to create code from %v: %w", args[0], err)
	}

	return tools.SaveLinearBlockECC(args[1], lb)
}
