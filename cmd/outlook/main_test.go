package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"activity-forecast/models"
)

func sampleOutlook() models.ActivityForecast {
	return models.ActivityForecast{
		Location:    models.ResolvedLocation{Name: "Biarritz", Country: "France", Latitude: 43.48, Longitude: -1.56, Timezone: "Europe/Paris"},
		GeneratedAt: "2025-07-01T06:30:00.000Z",
		Activities: []models.ActivityScoreResult{
			{
				Activity: models.Surfing,
				Score:    0.82,
				Summary:  "Good surf window with best conditions on Tue 1 Jul: Wave height 1.8 m.",
				BestDay:  models.DailyActivityInsight{Date: "2025-07-01", Description: "Wave height 1.8 m"},
				Daily: []models.DailyActivityScore{
					{Date: "2025-07-01", Score: 0.82, Reasons: []string{"Wave height 1.8 m"}},
				},
			},
			{
				Activity: models.Skiing,
				Score:    0,
				Summary:  "Poor skiing conditions.",
				Daily:    []models.DailyActivityScore{{Date: "2025-07-01", Score: 0}},
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeText(&buf, sampleOutlook()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Biarritz, France (43.48, -1.56) Europe/Paris",
		"Generated 2025-07-01T06:30:00.000Z",
		"RANK",
		"SURFING",
		"0.82",
		"2025-07-01  0.82  Wave height 1.8 m",
		"2025-07-01  0.00  \n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "SURFING") > strings.Index(out, "SKIING") {
		t.Error("ranking order not preserved")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, sampleOutlook()); err != nil {
		t.Fatal(err)
	}
	var got models.ActivityForecast
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Activities) != 2 || got.Activities[0].Activity != models.Surfing {
		t.Errorf("activities = %+v", got.Activities)
	}
}
