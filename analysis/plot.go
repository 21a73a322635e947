package analysis

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one named line of a convergence chart.
type Series struct {
	Name   string
	Values []float64
}

// PlotConvergence renders the series as an html line chart at path. The x
// axis counts iterations from 1 up to the longest series.
func PlotConvergence(path string, series ...Series) error {
	if len(series) == 0 {
		return errors.New("nothing to plot")
	}
	numSteps := 0
	for _, s := range series {
		numSteps = max(numSteps, len(s.Values))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Policy iteration convergence",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "max value change"}),
	)

	steps := make([]string, 0, numSteps)
	for i := 1; i <= numSteps; i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}
	line = line.SetXAxis(steps)
	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
