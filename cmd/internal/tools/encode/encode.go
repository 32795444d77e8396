package encode

import (
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	RowMultiple uint
	ColMultiple uint
)

//EncodeRun encodes MESSAGES_BIN, frames of KPadded bytes, into CODEWORDS_BIN frames of NPadded bytes.
var EncodeRun = func(cmd *cobra.Command, args []string) error {
	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		return err
	}

	layout, err := tools.Layout(ecc, RowMultiple, ColMultiple)
	if err != nil {
		return err
	}

	messages, err := tools.ReadFrames(args[1], layout.KPadded)
	if err != nil {
		return err
	}

	codewords, err := layout.EncodeBatch(messages)
	if err != nil {
		return err
	}

	frames, _ := codewords.Dims()
	logrus.Infof("encoded %v frames", frames)
	return tools.WriteFrames(args[2], codewords)
}
