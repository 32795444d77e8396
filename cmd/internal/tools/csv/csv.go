package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var MessageError bool
var ParityError bool

var CSVRun = func(cmd *cobra.Command, args []string) error {
	stats, probabilities, err := tools.LoadAllResults(args)
	if err != nil {
		return err
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = write(w, args, stats, probabilities)
	if err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func write(w *csv.Writer, names []string, stats []*tools.SimulationStats, probabilities []float64) error {
	header := []string{"Results File"}
	for _, p := range probabilities {
		header = append(header, fmt.Sprintf("%v", p))
	}

	err := w.Write(header)
	if err != nil {
		return err
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(names[i], filepath.Ext(names[i]))

		for j, p := range probabilities {
			if v, has := s.Stats[p]; has {
				record[j+1] = fmt.Sprintf("%v", tools.Selected(v, MessageError, ParityError))
			}
		}

		err = w.Write(record)
		if err != nil {
			return err
		}
	}
	return nil
}
