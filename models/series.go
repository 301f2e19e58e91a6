package models

// DailySeries holds the forecast endpoint's parallel daily arrays as decoded.
// Nullable columns are pointers so that JSON null survives decoding.
type DailySeries struct {
	Timezone         string
	Time             []string
	TemperatureMax   []float64
	TemperatureMin   []float64
	PrecipitationSum []float64
	RainSum          []float64
	SnowfallSum      []float64
	SnowDepth        []*float64 // cm, only when the source reports it per day
	WindspeedMax     []float64
	WindDirection    []*float64
	CloudCoverMean   []float64
	SunshineDuration []float64 // seconds

	HourlyTime      []string   // YYYY-MM-DDTHH:MM
	HourlySnowDepth []*float64 // metres
}

// MarineSeries holds the marine endpoint's daily wave heights
type MarineSeries struct {
	Time          []string
	WaveHeightMax []*float64
}
