package scoring

import (
	"fmt"
	"sort"

	"activity-forecast/models"
)

const fallbackReason = "Favorable conditions"

// ScoreForecast scores every activity over every day of the forecast and
// returns the results ranked best first. It is pure: the same forecast always
// yields the same results.
func ScoreForecast(forecast models.WeatherForecast) []models.ActivityScoreResult {
	activities := models.Activities()
	ranked := make([]rankedResult, 0, len(activities))

	for _, activity := range activities {
		ranked = append(ranked, rankedResult{
			index:  activity.Index(),
			result: scoreActivity(mustScorer(activity), forecast),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].result.Score != ranked[j].result.Score {
			return ranked[i].result.Score > ranked[j].result.Score
		}
		return ranked[i].index < ranked[j].index
	})

	results := make([]models.ActivityScoreResult, len(ranked))
	for i, r := range ranked {
		results[i] = r.result
	}
	return results
}

// BuildOutlook scores a forecast and packages it with its location and
// generation time
func BuildOutlook(forecast models.WeatherForecast) models.ActivityForecast {
	return models.ActivityForecast{
		Location:    forecast.Location,
		GeneratedAt: forecast.GeneratedAt,
		Activities:  ScoreForecast(forecast),
	}
}

// mustScorer panics for an activity without a scorer; the activity set is
// closed, so a miss is a programming error
func mustScorer(a models.Activity) activityScorer {
	scorer, ok := scorerFor(a)
	if !ok {
		panic(fmt.Sprintf("scoring: no scorer for activity %q", a))
	}
	return scorer
}

type rankedResult struct {
	index  int
	result models.ActivityScoreResult
}

func scoreActivity(s activityScorer, forecast models.WeatherForecast) models.ActivityScoreResult {
	daily := make([]models.DailyActivityScore, len(forecast.Daily))
	scores := make([]float64, len(forecast.Daily))
	best := -1

	for i, day := range forecast.Daily {
		daily[i] = s.score(day)
		scores[i] = daily[i].Score
		if best < 0 || daily[i].Score > daily[best].Score {
			best = i
		}
	}

	average := mean(scores)
	bestDay := models.DailyActivityInsight{Description: fallbackReason}
	if best >= 0 {
		bestDay.Date = daily[best].Date
		if len(daily[best].Reasons) > 0 {
			bestDay.Description = daily[best].Reasons[0]
		}
	}
	label := dayLabel(bestDay.Date, forecast.Location.Timezone)

	for i := range daily {
		daily[i].Score = round(daily[i].Score, 2)
	}

	return models.ActivityScoreResult{
		Activity: s.activity,
		Score:    round(average, 2),
		Summary:  s.summary(Descriptor(average), label, bestDay.Description),
		BestDay:  bestDay,
		Daily:    daily,
	}
}

// Descriptor buckets an unrounded average score into a headline word
func Descriptor(score float64) string {
	switch {
	case score >= 0.75:
		return "Great"
	case score >= 0.55:
		return "Good"
	case score >= 0.35:
		return "Mixed"
	default:
		return "Challenging"
	}
}
