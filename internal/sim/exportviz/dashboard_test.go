package exportviz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/store"
)

func TestWriteDashboardProducesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.html")
	detections := []store.TimedPoint{
		{Timestamp: 0, Point: geom.Point{X: 1, Y: 2, Z: 0}},
	}
	trajectory := []geom.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}

	if err := WriteDashboard(path, detections, trajectory); err != nil {
		t.Fatalf("WriteDashboard: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "<html") {
		t.Error("expected rendered output to contain an <html> tag")
	}
}
