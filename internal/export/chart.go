package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	ChartBar = "bar"
	ChartPie = "pie"
)

var chartColors = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8", "#82CA9D", "#FFC658", "#FF7C7C"}

// RenderChart writes a standalone HTML page with a bar or pie chart of the
// expenditure data.
func RenderChart(w io.Writer, chart dto.Chart, kind string) error {
	title := opts.Title{
		Title:    fmt.Sprintf("Expenditure by %s", capitalize(chart.Dimension)),
		Subtitle: fmt.Sprintf("Total ₹%.2f, highest ₹%.2f, average ₹%.2f", chart.Summary.Total, chart.Summary.Highest, chart.Summary.Average),
	}
	switch kind {
	case ChartBar, "":
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(title),
			charts.WithColorsOpts(opts.Colors(chartColors)),
			charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"}}),
			charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		)
		names := make([]string, len(chart.Data))
		values := make([]opts.BarData, len(chart.Data))
		for i, d := range chart.Data {
			names[i] = d.Name
			values[i] = opts.BarData{Name: d.Name, Value: d.Value}
		}
		bar.SetXAxis(names).AddSeries("Amount", values)
		return bar.Render(w)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(title),
			charts.WithColorsOpts(opts.Colors(chartColors)),
			charts.WithTooltipOpts(opts.Tooltip{Trigger: "item", Formatter: "{b}: ₹{c} ({d}%)"}),
		)
		values := make([]opts.PieData, len(chart.Data))
		for i, d := range chart.Data {
			values[i] = opts.PieData{Name: d.Name, Value: d.Value}
		}
		pie.AddSeries("Amount", values).SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b} ({d}%)"}),
		)
		return pie.Render(w)
	}
	return fmt.Errorf("unknown chart type %q", kind)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
