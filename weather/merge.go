package weather

import (
	"math"
	"sort"

	"activity-forecast/models"
)

// mergeDaily builds one summary per distinct forecast date, attaching marine
// and snow depth data by date key rather than by position
func mergeDaily(series models.DailySeries, marine MarineResult) []models.DailyWeatherSummary {
	waves := marine.WaveHeights()
	hourlyDepth := dailySnowDepthFromHourly(series.HourlyTime, series.HourlySnowDepth)

	seen := make(map[string]bool, len(series.Time))
	daily := make([]models.DailyWeatherSummary, 0, len(series.Time))

	for i, date := range series.Time {
		if date == "" || seen[date] {
			continue
		}
		seen[date] = true

		day := models.DailyWeatherSummary{
			Date:                 date,
			TemperatureMinC:      valueAt(series.TemperatureMin, i),
			TemperatureMaxC:      valueAt(series.TemperatureMax, i),
			PrecipitationMm:      valueAt(series.PrecipitationSum, i),
			RainMm:               valueAt(series.RainSum, i),
			SnowfallCm:           valueAt(series.SnowfallSum, i),
			SnowDepthCm:          nullableAt(series.SnowDepth, i),
			WindspeedMaxKph:      valueAt(series.WindspeedMax, i),
			WindDirectionDegrees: nullableAt(series.WindDirection, i),
			CloudCoverMean:       valueAt(series.CloudCoverMean, i),
			SunshineHours:        round(valueAt(series.SunshineDuration, i)/3600, 2),
		}
		if day.SnowDepthCm == nil {
			if depth, ok := hourlyDepth[date]; ok {
				day.SnowDepthCm = models.Float(depth)
			}
		}
		if wave, ok := waves[date]; ok {
			day.WaveHeightM = models.Float(wave)
		}
		daily = append(daily, day)
	}

	sort.SliceStable(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily
}

// dailySnowDepthFromHourly folds hourly snow depth in metres into the daily
// maximum in centimetres
func dailySnowDepthFromHourly(times []string, depths []*float64) map[string]float64 {
	out := make(map[string]float64)
	for i, ts := range times {
		if i >= len(depths) || len(ts) < len("2006-01-02") {
			continue
		}
		v := depths[i]
		if v == nil || !isFinite(*v) {
			continue
		}
		date := ts[:len("2006-01-02")]
		cm := round(*v*100, 1)
		if prev, ok := out[date]; !ok || cm > prev {
			out[date] = cm
		}
	}
	return out
}

func valueAt(values []float64, i int) float64 {
	if i >= len(values) || !isFinite(values[i]) {
		return 0
	}
	return values[i]
}

func nullableAt(values []*float64, i int) *float64 {
	if i >= len(values) || values[i] == nil || !isFinite(*values[i]) {
		return nil
	}
	return models.Float(*values[i])
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
