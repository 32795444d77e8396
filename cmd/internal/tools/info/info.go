package info

import (
	"fmt"
	"io"
	"os"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/spf13/cobra"
)

var (
	Girth   bool
	Threads uint
)

var InfoRun = func(cmd *cobra.Command, args []string) error {
	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		return err
	}

	var girth *int
	if Girth {
		g := linearblock.CalculateGirth(cmd.Context(), ecc.H, int(Threads))
		girth = &g
	}
	return Write(os.Stdout, ecc, girth)
}

//Write prints a summary of ecc, girth is skipped when nil and -1 means no cycles.
func Write(w io.Writer, ecc *linearblock.LinearBlock, girth *int) error {
	m, n := ecc.H.Dims()
	_, err := fmt.Fprintf(w, "H: %vx%v\nfingerprint: %v\n", m, n, tools.Md5Sum(ecc.H))
	if err != nil {
		return err
	}

	if ecc.Processing != nil {
		_, err = fmt.Fprintf(w, "N: %v\nK: %v\nM: %v\nrate: %0.4f\nvalid: %v\n",
			ecc.CodewordLength(), ecc.MessageLength(), ecc.ParitySymbols(), ecc.CodeRate(), ecc.Validate())
		if err != nil {
			return err
		}
	}

	switch {
	case girth == nil:
	case *girth < 0:
		_, err = fmt.Fprintf(w, "girth: none\n")
	default:
		_, err = fmt.Fprintf(w, "girth: %v\n", *girth)
	}
	return err
}
