package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/transport/core/model"
)

// WriteComparisonChart renders an HTML bar chart of the total cost per
// method. The reference optimum, when present, is drawn as its own bar.
func WriteComparisonChart(w io.Writer, cmp model.Comparison) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Transportation cost by method"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Method"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total cost"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var names []string
	var data []opts.BarData
	for _, s := range cmp.Solutions {
		names = append(names, s.Method.String())
		data = append(data, opts.BarData{Name: s.Method.String(), Value: s.TotalCost})
	}
	if cmp.Reference != nil {
		names = append(names, cmp.Reference.Method.String())
		data = append(data, opts.BarData{Name: cmp.Reference.Method.String(), Value: cmp.Reference.TotalCost})
	}
	bar.SetXAxis(names).AddSeries("Total cost", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar.Render(w)
}
