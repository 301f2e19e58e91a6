package models

// Activity is one of the closed set of scored activities
type Activity string

const (
	Skiing             Activity = "SKIING"
	Surfing            Activity = "SURFING"
	OutdoorSightseeing Activity = "OUTDOOR_SIGHTSEEING"
	IndoorSightseeing  Activity = "INDOOR_SIGHTSEEING"
)

var canonicalOrder = [...]Activity{Skiing, Surfing, OutdoorSightseeing, IndoorSightseeing}

// Activities returns every activity in canonical order
func Activities() []Activity {
	out := make([]Activity, len(canonicalOrder))
	copy(out, canonicalOrder[:])
	return out
}

// Index returns the canonical position of a, or -1 for an unknown value
func (a Activity) Index() int {
	for i, known := range canonicalOrder {
		if known == a {
			return i
		}
	}
	return -1
}

// DailyActivityScore is one activity's score for one day
type DailyActivityScore struct {
	Date    string   `json:"date"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"` // Reasons[0] is the primary stat line
}

// DailyActivityInsight describes the best day of an activity
type DailyActivityInsight struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ActivityScoreResult is one activity's outlook across the whole forecast
type ActivityScoreResult struct {
	Activity Activity             `json:"activity"`
	Score    float64              `json:"score"`
	Summary  string               `json:"summary"`
	BestDay  DailyActivityInsight `json:"bestDay"`
	Daily    []DailyActivityScore `json:"daily"`
}

// ActivityForecast is what the API returns for one location query
type ActivityForecast struct {
	Location    ResolvedLocation      `json:"location"`
	GeneratedAt string                `json:"generatedAt"`
	Activities  []ActivityScoreResult `json:"activities"`
}
