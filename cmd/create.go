package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/create/alist"
	"github.com/nathanhack/ldpc/cmd/internal/create/gallager"
	"github.com/nathanhack/ldpc/cmd/internal/create/gce"
	"github.com/nathanhack/ldpc/cmd/internal/create/hamming"
	"github.com/nathanhack/ldpc/cmd/internal/create/qc"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a new ECC",
	Long:    `create provides the ability to make a new ECC from the list of built-in ECCs and save them so they can be used later by the tools.`,
}

// createlinearblockCmd represents the linearblock command
var createlinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "creates linearblock ECCs",
	Long:    `Creates linearblock ECCs.`,
}

// createldpcCmd represents the ldpc command
var createldpcCmd = &cobra.Command{
	Use:     "ldpc",
	Aliases: []string{"l"},
	Short:   "creates LDPC",
	Long:    `Creates linearblock ECCs known as Low Density Parity Check (LDPC)`,
}

// createGallagerCmd represents the gallager command
var createGallagerCmd = &cobra.Command{
	Use:     "gallager OUTPUT_LDPC_JSON",
	Aliases: []string{"g"},
	Short:   "Creates a new Gallager based ECC",
	Long:    `Creates a new Gallager based ECC. Note a small cycle has a negative effect on the effectiveness of the LDPC.`,
	Args:    cobra.ExactArgs(1),
	RunE:    gallager.GallagerRun,
}

// createGCECmd represents the gce command
var createGCECmd = &cobra.Command{
	Use:   "gce OUTPUT_LDPC_JSON",
	Short: "Creates a new GCE based ECC",
	Long:  `Creates a new girth constrained LDPC. The H matrix is grown so no cycle is shorter than --girth.`,
	Args:  cobra.ExactArgs(1),
	RunE:  gce.GCERun,
}

// createHammingCmd represents the Hamming command
var createHammingCmd = &cobra.Command{
	Use:     "hamming OUTPUT_HAMMING_JSON",
	Aliases: []string{"h", "ham"},
	Short:   "Creates a new Hamming code based ECC",
	Long:    `Creates a new Hamming code based ECC.`,
	Args:    cobra.ExactArgs(1),
	RunE:    hamming.HammingRun,
}

// createAlistCmd represents the alist command
var createAlistCmd = &cobra.Command{
	Use:     "alist INPUT_ALIST OUTPUT_JSON",
	Aliases: []string{"a"},
	Short:   "Creates an ECC from an alist parity check description",
	Long: `Creates an ECC from an alist parity check description. The generator matrix is derived
by Gauss-Jordan elimination; rank deficient matrices fail unless --redundant is given.`,
	Args: cobra.ExactArgs(2),
	RunE: alist.AlistRun,
}

// createQCCmd represents the qc command
var createQCCmd = &cobra.Command{
	Use:   "qc OUTPUT_JSON",
	Short: "Creates a quasi-cyclic LDPC",
	Long: `Creates a quasi-cyclic LDPC by expanding a base matrix of circulant shifts, read from
--base or generated as an array code from --z, --block-rows and --block-cols.`,
	Args: cobra.ExactArgs(1),
	RunE: qc.QCRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createlinearblockCmd)
	createlinearblockCmd.AddCommand(createldpcCmd)

	createldpcCmd.AddCommand(createGallagerCmd)
	createGallagerCmd.Flags().UintVarP(&gallager.Message, "message", "m", 1000, "the number of bits in the message")
	createGallagerCmd.Flags().UintVarP(&gallager.Wc, "column", "c", 3, "the column weight (number of ones in the H matrix column) (>=3)")
	createGallagerCmd.Flags().UintVarP(&gallager.Wr, "row", "r", 4, "the row weight (number of ones in the H matrix row) (column < row)")
	createGallagerCmd.Flags().UintVarP(&gallager.Smallest, "smallest", "s", 4, "the smallest allowed cycle: 4, 6, 8...")
	createGallagerCmd.Flags().UintVarP(&gallager.Iter, "iter", "i", 10000, "the number of iterations to try before terminating the search")
	createGallagerCmd.Flags().UintVarP(&gallager.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")

	createldpcCmd.AddCommand(createGCECmd)
	createGCECmd.Flags().UintVarP(&gce.MessageSize, "message", "m", 1000, "the number of bits in the message")
	createGCECmd.Flags().UintVarP(&gce.CodewordSize, "codeword", "c", 2000, "the number of bits for the whole codeword(message+ecc)")
	createGCECmd.Flags().UintVarP(&gce.Girth, "girth", "g", 20, "the girth to use")
	createGCECmd.Flags().UintVarP(&gce.Iter, "iter", "i", 10000, "the number of iterations to try before terminating the search")
	createGCECmd.Flags().UintVarP(&gce.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
	createGCECmd.Flags().BoolVarP(&gce.Force, "force", "f", false, "to enable forcing")

	createldpcCmd.AddCommand(createQCCmd)
	createQCCmd.Flags().StringVarP(&qc.BaseFile, "base", "b", "", "the base matrix file: cols rows Z followed by rows*cols shifts (-1 is a zero block)")
	createQCCmd.Flags().UintVarP(&qc.ArrayZ, "z", "z", 0, "the circulant size of the array code")
	createQCCmd.Flags().UintVar(&qc.BlockRows, "block-rows", 3, "the block rows (column weight) of the array code")
	createQCCmd.Flags().UintVar(&qc.BlockCols, "block-cols", 0, "the block columns (row weight) of the array code")
	createQCCmd.Flags().BoolVarP(&qc.Redundant, "redundant", "d", false, "allow dependent rows in H, the generator is derived from the independent ones")
	createQCCmd.Flags().StringVarP(&qc.AlistFile, "alist", "a", "", "also write the expanded H matrix in alist format")
	createQCCmd.Flags().UintVarP(&qc.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")

	createlinearblockCmd.AddCommand(createHammingCmd)
	createHammingCmd.Flags().UintVarP(&hamming.ParityBits, "parity", "p", 4, "the parity >=3, sets codeword size (cs) == 2^parity-1 and message size == cs-parity")
	createHammingCmd.Flags().UintVarP(&hamming.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")

	createlinearblockCmd.AddCommand(createAlistCmd)
	createAlistCmd.Flags().BoolVarP(&alist.Redundant, "redundant", "d", false, "allow dependent rows in H, the generator is derived from the independent ones")
	createAlistCmd.Flags().UintVarP(&alist.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
}
