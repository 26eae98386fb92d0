package exportviz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/velocity.report/internal/security"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// PlotTrajectoryXY renders the vehicle's recorded ground-track (X vs Y) as
// a PNG line chart, in the teacher's one-series-per-line plotting idiom.
func PlotTrajectoryXY(path string, points []geom.Point) error {
	if len(points) == 0 {
		return &simerr.ConfigurationError{Msg: "no trajectory points to plot"}
	}
	if err := security.ValidateExportPath(path); err != nil {
		return &simerr.ConfigurationError{Msg: err.Error()}
	}

	p := plot.New()
	p.Title.Text = "Vehicle Trajectory"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: float64(pt.X), Y: float64(pt.Y)}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build trajectory line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return &simerr.IoError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// PlotDetectionCountOverTime renders the number of detection points
// recorded per timestamp as a PNG line chart.
func PlotDetectionCountOverTime(path string, timestamps []float64, counts []int) error {
	if len(timestamps) != len(counts) {
		return &simerr.ConfigurationError{Msg: "timestamps and counts must be the same length"}
	}
	if len(timestamps) == 0 {
		return &simerr.ConfigurationError{Msg: "no samples to plot"}
	}
	if err := security.ValidateExportPath(path); err != nil {
		return &simerr.ConfigurationError{Msg: err.Error()}
	}

	p := plot.New()
	p.Title.Text = "Detections Per Frame"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Detection Count"

	pts := make(plotter.XYs, len(timestamps))
	for i := range timestamps {
		pts[i] = plotter.XY{X: timestamps[i], Y: float64(counts[i])}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build detection count line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return &simerr.IoError{Op: "save", Path: path, Err: err}
	}
	return nil
}
