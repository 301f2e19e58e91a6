package models

// ResolvedLocation is the geocoded basis for every fetch made for one query
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// DailyWeatherSummary is one calendar day of merged forecast and marine data
type DailyWeatherSummary struct {
	Date                 string   `json:"date"` // YYYY-MM-DD
	TemperatureMinC      float64  `json:"temperatureMinC"`
	TemperatureMaxC      float64  `json:"temperatureMaxC"`
	PrecipitationMm      float64  `json:"precipitationMm"`
	RainMm               float64  `json:"rainMm"`
	SnowfallCm           float64  `json:"snowfallCm"`
	SnowDepthCm          *float64 `json:"snowDepthCm"`
	WindspeedMaxKph      float64  `json:"windspeedMaxKph"`
	WindDirectionDegrees *float64 `json:"windDirectionDegrees"`
	CloudCoverMean       float64  `json:"cloudCoverMean"` // 0-100
	SunshineHours        float64  `json:"sunshineHours"`
	WaveHeightM          *float64 `json:"waveHeightM"`
}

// WeatherForecast is the per-query aggregation result
type WeatherForecast struct {
	Location    ResolvedLocation      `json:"location"`
	Daily       []DailyWeatherSummary `json:"daily"`
	GeneratedAt string                `json:"generatedAt"`
}

// Float returns a pointer to v, for populating the nullable fields
func Float(v float64) *float64 {
	return &v
}
