package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders sweep results as a standalone HTML page with an
// interactive flow and mean-velocity chart over density.
func WriteHTML(w io.Writer, points []DensityPoint) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fundamental diagram",
			Subtitle: "flow and mean velocity vs density",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "density"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells per tick"}),
	)

	xs := make([]string, 0, len(points))
	flow := make([]opts.LineData, 0, len(points))
	vel := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		xs = append(xs, fmt.Sprintf("%.3f", p.Density))
		flow = append(flow, opts.LineData{Value: p.Flow})
		vel = append(vel, opts.LineData{Value: p.MeanVelocity})
	}
	line.SetXAxis(xs).
		AddSeries("flow", flow).
		AddSeries("mean velocity", vel)

	return line.Render(w)
}
