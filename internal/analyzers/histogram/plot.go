package histogram

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// writePlot renders the final cumulative histogram as an HTML bar chart.
func writePlot(writer io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	final := rows[len(rows)-1]

	labels := make([]string, len(final.Counts))
	data := make([]opts.BarData, len(final.Counts))

	for i, count := range final.Counts {
		labels[i] = strconv.Itoa(reportFrom + i)
		data[i] = opts.BarData{Value: count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Divisor count distribution",
			Subtitle: "Cumulative over all candidates",
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "divisors"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "candidates"}),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("candidates", data)

	err := bar.Render(writer)
	if err != nil {
		return fmt.Errorf("render histogram plot: %w", err)
	}

	return nil
}
