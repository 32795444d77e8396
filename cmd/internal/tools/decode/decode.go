package decode

import (
	"fmt"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"
	"github.com/nathanhack/ldpc/metrics"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	RowMultiple  uint
	ColMultiple  uint
	MaxIter      uint
	Threads      uint
	GoldenFile   string
	MessagesFile string
)

//DecodeRun repairs CODEWORDS_BIN frames against the padded H.T and writes them to OUTPUT_BIN.
var DecodeRun = func(cmd *cobra.Command, args []string) error {
	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		return err
	}

	layout, err := tools.Layout(ecc, RowMultiple, ColMultiple)
	if err != nil {
		return err
	}

	codewords, err := tools.ReadFrames(args[1], layout.NPadded)
	if err != nil {
		return err
	}

	maxIter := tools.Profile.Decoder.MaxIterations
	if cmd.Flags().Changed("iters") {
		maxIter = int(MaxIter)
	}
	threads := tools.Profile.Decoder.Threads
	if cmd.Flags().Changed("threads") {
		threads = int(Threads)
	}

	batch := harddecision.NewBatch(layout.HT, maxIter, threads)
	batch.InPlace = tools.Profile.Decoder.InPlace
	result, err := batch.Decode(cmd.Context(), codewords)
	if err != nil {
		return err
	}

	observer := metrics.NewDecoder(maxIter)
	observer.Observe(result)
	if tools.Profile.Metrics.Textfile != "" {
		if err := observer.WriteToTextfile(tools.Profile.Metrics.Textfile); err != nil {
			return fmt.Errorf("unable to write metrics: %w", err)
		}
	}

	err = tools.WriteFrames(args[2], result.Codewords)
	if err != nil {
		return err
	}

	frames, _ := result.Codewords.Dims()
	fmt.Printf("%v frames: %v converged, %v after %v iterations with %v flips\n",
		frames, frames-len(result.Unconverged()), result.State, result.Iterations, result.Flips)

	if MessagesFile != "" {
		messages := mat.CSRMat(frames, layout.KPadded)
		for f := 0; f < frames; f++ {
			message, err := layout.Decode(result.Codewords.Row(f))
			if err != nil {
				return err
			}
			for _, i := range message.NonzeroArray() {
				messages.Set(f, i, 1)
			}
		}
		if err := tools.WriteFrames(MessagesFile, messages); err != nil {
			return err
		}
	}

	if GoldenFile != "" {
		golden, err := tools.ReadFrames(GoldenFile, layout.NPadded)
		if err != nil {
			return err
		}
		mismatchedFrames, bitErrors, err := Compare(result.Codewords, golden)
		if err != nil {
			return err
		}
		fmt.Printf("golden: %v of %v frames match, %v bit errors\n", frames-mismatchedFrames, frames, bitErrors)
		if mismatchedFrames > 0 {
			return fmt.Errorf("%v frames differ from %v", mismatchedFrames, GoldenFile)
		}
	}
	return nil
}

//Compare counts the frames of decoded that differ from golden and the total differing bits.
func Compare(decoded, golden mat.SparseMat) (mismatchedFrames, bitErrors int, err error) {
	frames, cols := decoded.Dims()
	goldenFrames, goldenCols := golden.Dims()
	if frames != goldenFrames || cols != goldenCols {
		return 0, 0, fmt.Errorf("%w: decoded (%v,%v) but golden (%v,%v)", gf2.ErrDimensionMismatch, frames, cols, goldenFrames, goldenCols)
	}

	for f := 0; f < frames; f++ {
		d := decoded.Row(f).HammingDistance(golden.Row(f))
		if d > 0 {
			mismatchedFrames++
			bitErrors += d
			logrus.WithFields(logrus.Fields{"frame": f, "bits": d}).Debug("frame differs from golden")
		}
	}
	return mismatchedFrames, bitErrors, nil
}
