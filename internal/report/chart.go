package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one named line, one point per sweep.
type Series struct {
	Name   string
	Points []float64
}

// Convergence collects what a run wants plotted.
type Convergence struct {
	Title     string
	Residuals []float64
	Tracked   []Series
}

func (c Convergence) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = c.Title
	page.AddCharts(
		c.line("bellman residual", []Series{{Name: "max |V_k - V_k-1|", Points: c.Residuals}}),
	)
	if len(c.Tracked) > 0 {
		page.AddCharts(c.line("state values", c.Tracked))
	}
	return page.Render(w)
}

func (c Convergence) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}

func (c Convergence) line(title string, series []Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: c.Title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sweep"}),
	)

	numSweeps := 0
	for _, s := range series {
		numSweeps = max(numSweeps, len(s.Points))
	}
	sweeps := make([]string, 0, numSweeps)
	for i := 1; i <= numSweeps; i++ {
		sweeps = append(sweeps, fmt.Sprintf("%d", i))
	}
	line.SetXAxis(sweeps)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Points))
		for _, v := range s.Points {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}
	return line
}
