package weather

import (
	"math"

	"activity-forecast/models"
)

// MarineResult is the outcome of the best-effort marine branch. Absence is the
// normal state for inland locations and never fails a forecast.
type MarineResult struct {
	Series  models.MarineSeries
	Present bool
	Err     error // why the data is absent, nil when it was never requested
}

// MarinePresent wraps a successfully fetched series
func MarinePresent(series models.MarineSeries) MarineResult {
	return MarineResult{Series: series, Present: true}
}

// MarineAbsent records that no marine data is available
func MarineAbsent(err error) MarineResult {
	return MarineResult{Err: err}
}

// WaveHeights indexes the finite wave heights by date. An absent result
// yields an empty map.
func (m MarineResult) WaveHeights() map[string]float64 {
	waves := make(map[string]float64)
	if !m.Present {
		return waves
	}
	for i, date := range m.Series.Time {
		if i >= len(m.Series.WaveHeightMax) {
			break
		}
		if v := m.Series.WaveHeightMax[i]; v != nil && isFinite(*v) {
			waves[date] = *v
		}
	}
	return waves
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
