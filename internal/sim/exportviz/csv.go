// Package exportviz renders solved detection clouds and vehicle
// trajectories to CSV, static PNG charts, and a self-contained HTML
// dashboard, for offline inspection of a simulation run.
package exportviz

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/banshee-data/velocity.report/internal/security"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
	"github.com/banshee-data/velocity.report/internal/sim/store"
)

// WriteDetectionsCSV writes rows (timestamp, x, y, z) for each detection
// point in points, oldest first.
func WriteDetectionsCSV(path string, points []store.TimedPoint) error {
	if err := security.ValidateExportPath(path); err != nil {
		return &simerr.ConfigurationError{Msg: err.Error()}
	}

	f, err := os.Create(path)
	if err != nil {
		return &simerr.IoError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "x", "y", "z"}); err != nil {
		return &simerr.IoError{Op: "write", Path: path, Err: err}
	}
	for _, p := range points {
		row := []string{
			fmt.Sprintf("%g", p.Timestamp),
			fmt.Sprintf("%g", p.Point.X),
			fmt.Sprintf("%g", p.Point.Y),
			fmt.Sprintf("%g", p.Point.Z),
		}
		if err := w.Write(row); err != nil {
			return &simerr.IoError{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Error(); err != nil {
		return &simerr.IoError{Op: "flush", Path: path, Err: err}
	}
	return nil
}

// WriteTrajectoryCSV writes rows (step, x, y, z) for each recorded vehicle
// position in points, oldest first.
func WriteTrajectoryCSV(path string, points []geom.Point) error {
	if err := security.ValidateExportPath(path); err != nil {
		return &simerr.ConfigurationError{Msg: err.Error()}
	}

	f, err := os.Create(path)
	if err != nil {
		return &simerr.IoError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "x", "y", "z"}); err != nil {
		return &simerr.IoError{Op: "write", Path: path, Err: err}
	}
	for i, p := range points {
		row := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%g", p.X),
			fmt.Sprintf("%g", p.Y),
			fmt.Sprintf("%g", p.Z),
		}
		if err := w.Write(row); err != nil {
			return &simerr.IoError{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Error(); err != nil {
		return &simerr.IoError{Op: "flush", Path: path, Err: err}
	}
	return nil
}
