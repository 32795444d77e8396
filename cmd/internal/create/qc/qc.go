package qc

import (
	"fmt"
	"os"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/alist"
	"github.com/nathanhack/ldpc/linearblock/ldpc/qc"
	mat "github.com/nathanhack/sparsemat"
	"github.com/spf13/cobra"
)

var (
	BaseFile  string
	ArrayZ    uint
	BlockRows uint
	BlockCols uint
	Threads   uint
	Redundant bool
	AlistFile string
)

//QCRun expands a base matrix, from --base or an array code, and builds a code from it.
var QCRun = func(cmd *cobra.Command, args []string) error {
	base, err := baseMatrix()
	if err != nil {
		return err
	}

	H, err := qc.Expand(cmd.Context(), base, int(Threads))
	if err != nil {
		return err
	}

	if AlistFile != "" {
		if err := writeAlist(AlistFile, H); err != nil {
			return err
		}
	}

	build := linearblock.New
	if Redundant {
		build = linearblock.NewRedundant
	}
	lb, err := build(cmd.Context(), H, int(Threads))
	if err != nil {
		return fmt.Errorf("unable to create QC code: %w", err)
	}

	return tools.SaveLinearBlockECC(args[0], lb)
}

func baseMatrix() (*qc.BaseMatrix, error) {
	if BaseFile == "" {
		if ArrayZ == 0 || BlockRows == 0 || BlockCols == 0 {
			return nil, fmt.Errorf("either --base or all of --z, --block-rows and --block-cols are required")
		}
		return qc.Array(int(ArrayZ), int(BlockRows), int(BlockCols)), nil
	}

	f, err := os.Open(BaseFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base, err := qc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", BaseFile, err)
	}
	return base, nil
}

func writeAlist(filename string, H mat.SparseMat) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := alist.Write(f, H); err != nil {
		f.Close()
		return fmt.Errorf("unable to write %v: %w", filename, err)
	}
	return f.Close()
}
