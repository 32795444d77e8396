package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var MessageError bool
var ParityError bool

var ChartRun = func(cmd *cobra.Command, args []string) error {
	stats, probabilities, err := tools.LoadAllResults(args)
	if err != nil {
		return err
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return newBar(args, stats, probabilities).Render(f)
}

func newBar(names []string, stats []*tools.SimulationStats, probabilities []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: "Error Rates",
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Error Probability",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Remaining Error",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	xnames := make([]string, len(probabilities))
	for i, p := range probabilities {
		xnames[i] = fmt.Sprint(p)
	}
	bar.SetXAxis(xnames)

	for i, s := range stats {
		bar.AddSeries(names[i], series(s, probabilities))
	}
	return bar
}

func series(stat *tools.SimulationStats, values []float64) []opts.BarData {
	results := make([]opts.BarData, len(values))
	null := opts.BarData{Value: nil}
	for i, v := range values {
		x, has := stat.Stats[v]
		if !has {
			results[i] = null
			continue
		}

		results[i] = opts.BarData{
			Value: tools.Selected(x, MessageError, ParityError),
		}
	}
	return results
}
