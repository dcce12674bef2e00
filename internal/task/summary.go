package task

import (
	"path/filepath"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates batch statistics, useful for eyeballing dataset balance
// before training on it.
type Summary struct {
	Count           int            `json:"count"`
	VideosGenerated int            `json:"videos_generated"`
	VideosSkipped   int            `json:"videos_skipped"`
	MeanBounces     float64        `json:"mean_bounces"`
	StdDevBounces   float64        `json:"stddev_bounces"`
	MeanImpactSpeed float64        `json:"mean_impact_speed"`
	MeanPeakHeight  float64        `json:"mean_peak_height"`
	MeanGravity     float64        `json:"mean_gravity"`
	StdDevGravity   float64        `json:"stddev_gravity"`
	KindCounts      map[string]int `json:"kind_counts"`
}

func Summarize(results []Result) Summary {
	s := Summary{Count: len(results), KindCounts: make(map[string]int)}
	if len(results) == 0 {
		return s
	}

	bounces := make([]float64, 0, len(results))
	impacts := make([]float64, 0, len(results))
	peaks := make([]float64, 0, len(results))
	gravities := make([]float64, 0, len(results))

	for _, r := range results {
		bounces = append(bounces, r.Metrics["bounce_count"])
		impacts = append(impacts, r.Metrics["impact_speed"])
		peaks = append(peaks, r.Metrics["peak_height"])
		gravities = append(gravities, r.Params.Gravity)
		s.KindCounts[string(r.Kind)]++
		if r.Video != "" {
			s.VideosGenerated++
		}
		if r.VideoSkipped {
			s.VideosSkipped++
		}
	}

	s.MeanBounces = stat.Mean(bounces, nil)
	s.StdDevBounces = stat.StdDev(bounces, nil)
	s.MeanImpactSpeed = stat.Mean(impacts, nil)
	s.MeanPeakHeight = stat.Mean(peaks, nil)
	s.MeanGravity = stat.Mean(gravities, nil)
	s.StdDevGravity = stat.StdDev(gravities, nil)
	return s
}

// WriteSummary persists the batch summary next to the task directories.
func WriteSummary(outputDir string, s Summary) error {
	return writeJSON(filepath.Join(outputDir, "summary.json"), s)
}
