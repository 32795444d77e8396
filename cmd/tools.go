package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/tools/bec/simple"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc/dwbf"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc/gallager"
	"github.com/nathanhack/ldpc/cmd/internal/tools/bsc/majority"
	"github.com/nathanhack/ldpc/cmd/internal/tools/chart"
	"github.com/nathanhack/ldpc/cmd/internal/tools/csv"
	"github.com/nathanhack/ldpc/cmd/internal/tools/decode"
	"github.com/nathanhack/ldpc/cmd/internal/tools/encode"
	"github.com/nathanhack/ldpc/cmd/internal/tools/export"
	"github.com/nathanhack/ldpc/cmd/internal/tools/info"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"

	"github.com/spf13/cobra"
)

var bscProbabilities = []float64{0.01, 0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50}

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for ECCs",
	Long:    `Tools for ECCs`,
}

// toolsExportCmd represents the export command
var toolsExportCmd = &cobra.Command{
	Use:   "export ECC_JSON_FILE OUTPUT_DIR",
	Short: "Export padded G, H and H.T binaries",
	Long: `Pads the generator and parity check matrices to the hardware alignment and writes
G.bin, H.bin and HT.bin (one byte per bit, row-major) plus layout.yaml with their shapes.`,
	Args: cobra.ExactArgs(2),
	RunE: export.ExportRun,
}

// toolsEncodeCmd represents the encode command
var toolsEncodeCmd = &cobra.Command{
	Use:   "encode ECC_JSON_FILE MESSAGES_BIN CODEWORDS_BIN",
	Short: "Encode padded message frames",
	Long:  `Encodes frames of padded messages (one byte per bit) with the padded generator matrix.`,
	Args:  cobra.ExactArgs(3),
	RunE:  encode.EncodeRun,
}

// toolsDecodeCmd represents the decode command
var toolsDecodeCmd = &cobra.Command{
	Use:   "decode ECC_JSON_FILE CODEWORDS_BIN OUTPUT_BIN",
	Short: "Batch decode noisy codeword frames",
	Long: `Decodes frames of padded codewords (one byte per bit) with the majority bit flipping
batch decoder and writes the repaired frames.`,
	Args: cobra.ExactArgs(3),
	RunE: decode.DecodeRun,
}

// toolsInfoCmd represents the info command
var toolsInfoCmd = &cobra.Command{
	Use:     "info ECC_JSON_FILE",
	Aliases: []string{"i"},
	Short:   "Describe an ECC",
	Long:    `Prints the dimensions, rate and optionally the girth of an ECC.`,
	Args:    cobra.ExactArgs(1),
	RunE:    info.InfoRun,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsLinearblockCmd represents the linearblock command
var toolsLinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "Linearblock channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsHarddecisionCmd represents the harddecision command
var toolsHarddecisionCmd = &cobra.Command{
	Use:     "harddecision",
	Aliases: []string{"hard", "h"},
	Short:   "Using hard decisions",
	Long:    `Channel simulators for linearblock ECCs using hard decisions`,
}

// toolsBecCmd represents the bec command
var toolsBecCmd = &cobra.Command{
	Use:   "bec ECC_JSON_FILE RESULT_JSON",
	Short: "An erasure channel simulator",
	Long:  `A simple erasure channel simulator for linearblock ECCs`,
	Args:  cobra.ExactArgs(2),
	RunE:  simple.BecRun,
}

// toolsBscCmd represents the bsc command
var toolsBscCmd = &cobra.Command{
	Use:   "bsc",
	Short: "A binary symmetric channel simulator",
	Long:  `A binary symmetric channel simulator for linearblock ECCs`,
}

// toolsDwbfCmd represents the dwbf command
var toolsDwbfCmd = &cobra.Command{
	Use:     "dwbf ECC_JSON_FILE RESULT_JSON",
	Aliases: []string{"d"},
	Short:   "A linearblock BSC simulator with dwbf based bit flipping algorithm",
	Long:    `A linearblock BSC simulator with dwbf based bit flipping algorithm`,
	Args:    cobra.ExactArgs(2),
	RunE:    dwbf.DwbfRun,
}

// toolsGallagerCmd represents the gallager command
var toolsGallagerCmd = &cobra.Command{
	Use:     "gallager ECC_JSON_FILE RESULT_JSON",
	Aliases: []string{"g"},
	Short:   "A linearblock BSC simulator with gallager based bit flipping algorithm",
	Long:    `A linearblock BSC simulator with gallager based bit flipping algorithm`,
	Args:    cobra.ExactArgs(2),
	RunE:    gallager.GallagerRun,
}

// toolsMajorityCmd represents the majority command
var toolsMajorityCmd = &cobra.Command{
	Use:     "majority ECC_JSON_FILE RESULT_JSON",
	Aliases: []string{"m"},
	Short:   "A linearblock BSC simulator with majority vote bit flipping",
	Long:    `A linearblock BSC simulator flipping every bit with the most unsatisfied checks each iteration`,
	Args:    cobra.ExactArgs(2),
	RunE:    majority.MajorityRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:   "chart RESULTS_JSON [RESULTS_JSON] ...",
	Short: "Export to an HTML bar chart",
	Long:  `Export to an HTML bar chart`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)

	toolsCmd.AddCommand(toolsExportCmd)
	toolsExportCmd.Flags().UintVar(&export.RowMultiple, "row-multiple", 0, "pad K and M up to this multiple (0 uses the config)")
	toolsExportCmd.Flags().UintVar(&export.ColMultiple, "col-multiple", 0, "pad N up to this multiple (0 uses the config)")

	toolsCmd.AddCommand(toolsEncodeCmd)
	toolsEncodeCmd.Flags().UintVar(&encode.RowMultiple, "row-multiple", 0, "pad K and M up to this multiple (0 uses the config)")
	toolsEncodeCmd.Flags().UintVar(&encode.ColMultiple, "col-multiple", 0, "pad N up to this multiple (0 uses the config)")

	toolsCmd.AddCommand(toolsDecodeCmd)
	toolsDecodeCmd.Flags().UintVar(&decode.RowMultiple, "row-multiple", 0, "pad K and M up to this multiple (0 uses the config)")
	toolsDecodeCmd.Flags().UintVar(&decode.ColMultiple, "col-multiple", 0, "pad N up to this multiple (0 uses the config)")
	toolsDecodeCmd.Flags().UintVarP(&decode.MaxIter, "iters", "i", harddecision.DefaultMaxIterations, "max number of flip iterations (overrides the config)")
	toolsDecodeCmd.Flags().UintVarP(&decode.Threads, "threads", "t", 0, "number of threads to use (overrides the config, 0 means the # of CPUs)")
	toolsDecodeCmd.Flags().StringVarP(&decode.GoldenFile, "golden", "g", "", "expected codewords to compare the decoded frames against")
	toolsDecodeCmd.Flags().StringVarP(&decode.MessagesFile, "messages", "m", "", "also write the padded messages of the decoded frames")

	toolsCmd.AddCommand(toolsInfoCmd)
	toolsInfoCmd.Flags().BoolVarP(&info.Girth, "girth", "g", false, "calculate the girth of H")
	toolsInfoCmd.Flags().UintVarP(&info.Threads, "threads", "t", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")

	toolsChansimCmd.AddCommand(toolsLinearblockCmd)
	toolsLinearblockCmd.AddCommand(toolsHarddecisionCmd)

	toolsHarddecisionCmd.AddCommand(toolsBecCmd)
	toolsBecCmd.Flags().UintVarP(&simple.Options.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsBecCmd.Flags().Float64SliceVarP(&simple.Options.ErrorProbability, "probability", "p", []float64{0.01, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.99}, "probability of erasure [0, 1)")
	toolsBecCmd.Flags().UintVar(&simple.Options.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")

	toolsHarddecisionCmd.AddCommand(toolsBscCmd)

	toolsBscCmd.AddCommand(toolsDwbfCmd)
	toolsDwbfCmd.Flags().UintVarP(&dwbf.Options.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsDwbfCmd.Flags().Float64SliceVarP(&dwbf.Options.ErrorProbability, "probability", "p", bscProbabilities, "probability of crossover errors to test [0, 0.5]")
	toolsDwbfCmd.Flags().UintVar(&dwbf.Options.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsDwbfCmd.Flags().UintVarP(&dwbf.MaxIter, "iters", "i", harddecision.DefaultMaxIterations, "max number of iterations the bitflip algorithm is allowed")
	toolsDwbfCmd.Flags().Float64VarP(&dwbf.Alpha, "alpha", "a", .5, "hyperparameter 0<α<1")
	toolsDwbfCmd.Flags().Float64VarP(&dwbf.EtaThreshold, "eta", "e", 0.0, "hyperparameter η threshold: no requirement but frequently 0.0 is a good value")

	toolsBscCmd.AddCommand(toolsGallagerCmd)
	toolsGallagerCmd.Flags().UintVarP(&gallager.Options.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsGallagerCmd.Flags().Float64SliceVarP(&gallager.Options.ErrorProbability, "probability", "p", bscProbabilities, "probability of crossover errors to test [0, 0.5]")
	toolsGallagerCmd.Flags().UintVar(&gallager.Options.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsGallagerCmd.Flags().UintVarP(&gallager.MaxIter, "iters", "i", harddecision.DefaultMaxIterations, "max number of iterations the bitflip algorithm is allowed")

	toolsBscCmd.AddCommand(toolsMajorityCmd)
	toolsMajorityCmd.Flags().UintVarP(&majority.Options.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsMajorityCmd.Flags().Float64SliceVarP(&majority.Options.ErrorProbability, "probability", "p", bscProbabilities, "probability of crossover errors to test [0, 0.5]")
	toolsMajorityCmd.Flags().UintVar(&majority.Options.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsMajorityCmd.Flags().UintVarP(&majority.MaxIter, "iters", "i", harddecision.DefaultMaxIterations, "max number of iterations the bitflip algorithm is allowed")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.MessageError, "message", "m", false, "outputs the MessageError instead of CodewordError or ParityError")
	toolsCSVCmd.Flags().BoolVarP(&csv.ParityError, "parity", "p", false, "outputs the ParityError instead of CodewordError or MessageError")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&chart.MessageError, "message", "m", false, "charts the MessageError instead of CodewordError or ParityError")
	toolsChartCmd.Flags().BoolVarP(&chart.ParityError, "parity", "p", false, "charts the ParityError instead of CodewordError or MessageError")
}
