// Package report derives aggregate traffic measures from recorded
// simulation history and renders them as charts.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"nasch-ca/internal/sims/nasch"
)

// TickStats aggregates one recorded tick.
type TickStats struct {
	Tick         int
	MeanVelocity float64
	// Flow is the cell-averaged throughput q = sum(v)/L per tick.
	Flow    float64
	Stopped int
}

// DensityPoint is one measured point of the fundamental diagram.
type DensityPoint struct {
	Density      float64
	Flow         float64
	MeanVelocity float64
}

// Summarize computes per-tick aggregates from a tick-major grid of tagged
// cell observations with the given row width.
func Summarize(cells []uint8, width int) []TickStats {
	if width <= 0 {
		return nil
	}
	rows := len(cells) / width
	out := make([]TickStats, 0, rows)
	velocities := make([]float64, 0, width)
	for t := 0; t < rows; t++ {
		velocities = velocities[:0]
		stopped := 0
		sum := 0.0
		for _, c := range cells[t*width : (t+1)*width] {
			v, ok := nasch.DecodeCell(c)
			if !ok {
				continue
			}
			velocities = append(velocities, float64(v))
			sum += float64(v)
			if v == 0 {
				stopped++
			}
		}
		ts := TickStats{Tick: t, Flow: sum / float64(width), Stopped: stopped}
		if len(velocities) > 0 {
			ts.MeanVelocity = stat.Mean(velocities, nil)
		}
		out = append(out, ts)
	}
	return out
}

// Measure collapses per-tick stats into a single fundamental-diagram point
// at the given density, skipping the requested warmup ticks.
func Measure(stats []TickStats, warmup int, density float64) DensityPoint {
	if warmup < 0 || warmup >= len(stats) {
		warmup = 0
	}
	measured := stats[warmup:]
	pt := DensityPoint{Density: density}
	if len(measured) == 0 {
		return pt
	}
	flows := make([]float64, 0, len(measured))
	vels := make([]float64, 0, len(measured))
	for _, s := range measured {
		flows = append(flows, s.Flow)
		vels = append(vels, s.MeanVelocity)
	}
	pt.Flow = stat.Mean(flows, nil)
	pt.MeanVelocity = stat.Mean(vels, nil)
	return pt
}

// SaveTimeSeries plots mean velocity and flow against the tick index.
func SaveTimeSeries(stats []TickStats, path string) error {
	p := plot.New()
	p.Title.Text = "Traffic evolution"
	p.X.Label.Text = "tick"
	p.Y.Label.Text = "cells per tick"

	velPts := make(plotter.XYs, 0, len(stats))
	flowPts := make(plotter.XYs, 0, len(stats))
	for _, s := range stats {
		velPts = append(velPts, plotter.XY{X: float64(s.Tick), Y: s.MeanVelocity})
		flowPts = append(flowPts, plotter.XY{X: float64(s.Tick), Y: s.Flow})
	}

	velLine, err := plotter.NewLine(velPts)
	if err != nil {
		return fmt.Errorf("velocity line: %w", err)
	}
	velLine.Width = vg.Points(1)
	velLine.Color = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	p.Add(velLine)
	p.Legend.Add("mean velocity", velLine)

	flowLine, err := plotter.NewLine(flowPts)
	if err != nil {
		return fmt.Errorf("flow line: %w", err)
	}
	flowLine.Width = vg.Points(1)
	flowLine.Color = color.RGBA{R: 60, G: 100, B: 220, A: 255}
	p.Add(flowLine)
	p.Legend.Add("flow", flowLine)

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

// SaveFundamental plots flow against density from a sweep.
func SaveFundamental(points []DensityPoint, path string) error {
	p := plot.New()
	p.Title.Text = "Fundamental diagram"
	p.X.Label.Text = "density (vehicles per cell)"
	p.Y.Label.Text = "flow (vehicles per tick)"

	pts := make(plotter.XYs, 0, len(points))
	for _, dp := range points {
		pts = append(pts, plotter.XY{X: dp.Density, Y: dp.Flow})
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("fundamental diagram: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line, scatter)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
