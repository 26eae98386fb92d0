package exportviz

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/velocity.report/internal/sim/store"
)

// DetectionCountSummary holds percentile statistics of the number of
// detection points recorded per frame, in the teacher's P50/P85/P98
// aggregate-speed reporting shape.
type DetectionCountSummary struct {
	P50, P85, P98 float64
}

// SummarizeDetectionCounts buckets detections by timestamp and reports
// percentiles of the per-frame detection count, using the same
// stat.Quantile(stat.Empirical) convention the teacher applies to
// per-vehicle speed aggregates.
func SummarizeDetectionCounts(detections []store.TimedPoint) DetectionCountSummary {
	if len(detections) == 0 {
		return DetectionCountSummary{}
	}

	counts := make(map[float64]int, len(detections))
	for _, d := range detections {
		counts[d.Timestamp]++
	}

	sorted := make([]float64, 0, len(counts))
	for _, c := range counts {
		sorted = append(sorted, float64(c))
	}
	sort.Float64s(sorted)

	return DetectionCountSummary{
		P50: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P85: stat.Quantile(0.85, stat.Empirical, sorted, nil),
		P98: stat.Quantile(0.98, stat.Empirical, sorted, nil),
	}
}
