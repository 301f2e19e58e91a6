package scoring

import (
	"fmt"
	"math"

	"activity-forecast/models"
)

// estimatedWaveScore stands in for the wave sub-score when no marine data exists
const estimatedWaveScore = 0.4

// activityScorer pairs an activity with its daily scorer and summary template
type activityScorer struct {
	activity models.Activity
	score    func(day models.DailyWeatherSummary) models.DailyActivityScore
	summary  func(descriptor, label, reason string) string
}

// scorerFor resolves the scorer of a known activity. Adding an activity means
// adding a case here and an entry in the canonical order.
func scorerFor(a models.Activity) (activityScorer, bool) {
	switch a {
	case models.Skiing:
		return activityScorer{a, ScoreSkiing, func(d, label, reason string) string {
			return fmt.Sprintf("%s ski conditions overall. Best on %s: %s.", d, label, reason)
		}}, true
	case models.Surfing:
		return activityScorer{a, ScoreSurfing, func(d, label, reason string) string {
			return fmt.Sprintf("%s surf window with best conditions on %s: %s.", d, label, reason)
		}}, true
	case models.OutdoorSightseeing:
		return activityScorer{a, ScoreOutdoorSightseeing, func(d, label, reason string) string {
			return fmt.Sprintf("%s for outdoor sightseeing. %s looks strongest: %s.", d, label, reason)
		}}, true
	case models.IndoorSightseeing:
		return activityScorer{a, ScoreIndoorSightseeing, func(d, label, reason string) string {
			return fmt.Sprintf("%s week for indoor plans. %s is ideal: %s.", d, label, reason)
		}}, true
	}
	return activityScorer{}, false
}

// ScoreSkiing favours cold days on a deep base with little wind
func ScoreSkiing(day models.DailyWeatherSummary) models.DailyActivityScore {
	depth := 0.0
	if day.SnowDepthCm != nil {
		depth = *day.SnowDepthCm
	}

	composite := WeightedAverage([]Weighted{
		{Weight: 0.35, Value: IdealBelow(day.TemperatureMaxC, -2, 5)},
		{Weight: 0.35, Value: IdealAbove(depth, 40, 10)},
		{Weight: 0.20, Value: IdealBelow(day.WindspeedMaxKph, 30, 20)},
		{Weight: 0.10, Value: SaturatingScore(day.SnowfallCm, 5, 25)},
	})

	depthText := "n/a"
	if day.SnowDepthCm != nil {
		depthText = fixed(*day.SnowDepthCm, 0) + " cm"
	}
	reasons := []string{fmt.Sprintf("Max temp %s°C, snowfall %s cm, snow depth %s, wind %s km/h",
		fixed(day.TemperatureMaxC, 0), fixed(day.SnowfallCm, 1), depthText, fixed(day.WindspeedMaxKph, 0))}

	if day.SnowfallCm >= 3 {
		reasons = append(reasons, "Fresh snow expected")
	} else if day.SnowDepthCm != nil && *day.SnowDepthCm >= 40 {
		reasons = append(reasons, "Solid base depth")
	}

	return models.DailyActivityScore{Date: day.Date, Score: composite, Reasons: reasons}
}

// ScoreSurfing favours mid-sized waves, moderate wind and warm, dry air
func ScoreSurfing(day models.DailyWeatherSummary) models.DailyActivityScore {
	waveScore := estimatedWaveScore
	if day.WaveHeightM != nil {
		waveScore = IdealBand(*day.WaveHeightM, Band{Min: 0.5, IdealMin: 1.0, IdealMax: 2.5, Max: 4}, BandNormal)
	}

	composite := WeightedAverage([]Weighted{
		{Weight: 0.45, Value: waveScore},
		{Weight: 0.25, Value: IdealBand(day.WindspeedMaxKph, Band{Min: 5, IdealMin: 12, IdealMax: 28, Max: 45}, BandInverse)},
		{Weight: 0.20, Value: IdealBand(day.TemperatureMaxC, Band{Min: 16, IdealMin: 20, IdealMax: 30, Max: 35}, BandNormal)},
		{Weight: 0.10, Value: 1 - SaturatingScore(day.PrecipitationMm, 2, 15)},
	})

	var reasons []string
	if day.WaveHeightM != nil {
		reasons = append(reasons, fmt.Sprintf("Wave height %s m", fixed(*day.WaveHeightM, 1)))
	} else {
		reasons = append(reasons, "Wave data unavailable (estimated from wind/precipitation)")
	}
	reasons = append(reasons,
		fmt.Sprintf("Wind %s km/h", fixed(day.WindspeedMaxKph, 0)),
		fmt.Sprintf("Air %s°C", fixed(day.TemperatureMaxC, 0)),
	)
	if day.PrecipitationMm > 5 {
		reasons = append(reasons, "Heavy rain likely")
	}

	return models.DailyActivityScore{Date: day.Date, Score: composite, Reasons: reasons}
}

// ScoreOutdoorSightseeing favours mild, dry, clear and calm days
func ScoreOutdoorSightseeing(day models.DailyWeatherSummary) models.DailyActivityScore {
	composite := WeightedAverage([]Weighted{
		{Weight: 0.35, Value: IdealBand(day.TemperatureMaxC, Band{Min: 8, IdealMin: 18, IdealMax: 26, Max: 32}, BandNormal)},
		{Weight: 0.30, Value: 1 - SaturatingScore(day.PrecipitationMm, 1, 8)},
		{Weight: 0.20, Value: 1 - SaturatingScore(day.CloudCoverMean, 30, 90)},
		{Weight: 0.15, Value: IdealBelow(day.WindspeedMaxKph, 28, 20)},
	})

	reasons := []string{fmt.Sprintf("High %s°C, rain %s mm, cloud cover %s%%, wind %s km/h",
		fixed(day.TemperatureMaxC, 0), fixed(day.PrecipitationMm, 1),
		fixed(day.CloudCoverMean, 0), fixed(day.WindspeedMaxKph, 0))}

	if day.PrecipitationMm <= 1 {
		reasons = append(reasons, "Dry conditions expected")
	}
	if day.CloudCoverMean < 40 {
		reasons = append(reasons, "Plenty of sunshine")
	}

	return models.DailyActivityScore{Date: day.Date, Score: composite, Reasons: reasons}
}

// ScoreIndoorSightseeing rises with rain, cloud, wind and uncomfortable temperatures
func ScoreIndoorSightseeing(day models.DailyWeatherSummary) models.DailyActivityScore {
	discomfort := math.Max(
		SaturatingScore(math.Abs(day.TemperatureMaxC-22), 4, 18),
		SaturatingScore(math.Abs(day.TemperatureMinC-18), 4, 18),
	)

	composite := WeightedAverage([]Weighted{
		{Weight: 0.35, Value: SaturatingScore(day.PrecipitationMm, 2, 12)},
		{Weight: 0.25, Value: SaturatingScore(day.CloudCoverMean, 50, 100)},
		{Weight: 0.20, Value: discomfort},
		{Weight: 0.20, Value: SaturatingScore(day.WindspeedMaxKph, 25, 60)},
	})

	reasons := []string{fmt.Sprintf("Rain %s mm, clouds %s%%, wind %s km/h",
		fixed(day.PrecipitationMm, 1), fixed(day.CloudCoverMean, 0), fixed(day.WindspeedMaxKph, 0))}

	if day.PrecipitationMm >= 5 {
		reasons = append(reasons, "Rainy day suits indoor plans")
	}
	if day.TemperatureMaxC >= 30 || day.TemperatureMaxC <= 5 {
		reasons = append(reasons, "Temperature extremes favor indoor activities")
	}

	return models.DailyActivityScore{Date: day.Date, Score: composite, Reasons: reasons}
}
