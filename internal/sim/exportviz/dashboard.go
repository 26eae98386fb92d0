package exportviz

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/velocity.report/internal/security"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
	"github.com/banshee-data/velocity.report/internal/sim/store"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// WriteDashboard renders a single self-contained HTML page combining a
// scatter of detection points (top-down XY) and a line chart of the
// vehicle trajectory's Y coordinate against step index, in the teacher's
// components.Page debug-dashboard
// style.
func WriteDashboard(path string, detections []store.TimedPoint, trajectory []geom.Point) error {
	if err := security.ValidateExportPath(path); err != nil {
		return &simerr.ConfigurationError{Msg: err.Error()}
	}

	summary := SummarizeDetectionCounts(detections)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ADSIL Detections", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Detections (Top-Down XY)",
			Subtitle: fmt.Sprintf("points/frame p50=%.1f p85=%.1f p98=%.1f", summary.P50, summary.P85, summary.P98),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	scatterData := make([]opts.ScatterData, 0, len(detections))
	for _, d := range detections {
		scatterData = append(scatterData, opts.ScatterData{Value: []interface{}{d.Point.X, d.Point.Y}})
	}
	scatter.AddSeries("detections", scatterData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ADSIL Trajectory", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Vehicle Trajectory (Y per Step)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	xAxis := make([]string, len(trajectory))
	yData := make([]opts.LineData, len(trajectory))
	for i, p := range trajectory {
		xAxis[i] = strconv.Itoa(i)
		yData[i] = opts.LineData{Value: p.Y}
	}
	line.SetXAxis(xAxis).AddSeries("y (m)", yData)

	page := components.NewPage()
	page.AddCharts(scatter, line)

	f, err := os.Create(path)
	if err != nil {
		return &simerr.IoError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return &simerr.IoError{Op: "render", Path: path, Err: err}
	}
	return nil
}
