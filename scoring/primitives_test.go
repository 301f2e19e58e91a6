package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIdealBelow(t *testing.T) {
	tests := []struct {
		value, ideal, tolerance, want float64
	}{
		{5, 10, 5, 1},
		{10, 10, 5, 1},
		{12.5, 10, 5, 0.5},
		{15, 10, 5, 0},
		{40, 10, 5, 0},
	}
	for _, tt := range tests {
		if got := IdealBelow(tt.value, tt.ideal, tt.tolerance); !almostEqual(got, tt.want) {
			t.Errorf("IdealBelow(%v, %v, %v) = %v, want %v", tt.value, tt.ideal, tt.tolerance, got, tt.want)
		}
	}
}

func TestIdealAbove(t *testing.T) {
	tests := []struct {
		value, ideal, tolerance, want float64
	}{
		{90, 40, 10, 1},
		{40, 40, 10, 1},
		{35, 40, 10, 0.5},
		{30, 40, 10, 0},
		{0, 40, 10, 0},
	}
	for _, tt := range tests {
		if got := IdealAbove(tt.value, tt.ideal, tt.tolerance); !almostEqual(got, tt.want) {
			t.Errorf("IdealAbove(%v, %v, %v) = %v, want %v", tt.value, tt.ideal, tt.tolerance, got, tt.want)
		}
	}
}

func TestIdealBand(t *testing.T) {
	wave := Band{Min: 0.5, IdealMin: 1.0, IdealMax: 2.5, Max: 4}
	wind := Band{Min: 5, IdealMin: 12, IdealMax: 28, Max: 45}

	tests := []struct {
		name  string
		value float64
		band  Band
		mode  BandMode
		want  float64
	}{
		{"ideal min edge", 1.0, wave, BandNormal, 1},
		{"ideal max edge", 2.5, wave, BandNormal, 1},
		{"inside", 1.7, wave, BandNormal, 1},
		{"lower ramp", 0.75, wave, BandNormal, 0.5},
		{"upper ramp", 3.25, wave, BandNormal, 0.5},
		{"at min", 0.5, wave, BandNormal, 0},
		{"at max", 4, wave, BandNormal, 0},
		{"above max", 6, wave, BandNormal, 0},
		{"below min", 0.1, wave, BandNormal, 0},
		{"inverse inside", 20, wind, BandInverse, 1},
		{"inverse ideal edges", 12, wind, BandInverse, 1},
		{"inverse lower ramp", 8.5, wind, BandInverse, 0.5},
		{"inverse upper ramp", 36.5, wind, BandInverse, 0.5},
		{"inverse below min", 3, wind, BandInverse, 1},
		{"inverse above max", 50, wind, BandInverse, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdealBand(tt.value, tt.band, tt.mode); !almostEqual(got, tt.want) {
				t.Errorf("IdealBand(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIdealBandExactEdges(t *testing.T) {
	b := Band{Min: 16, IdealMin: 20, IdealMax: 30, Max: 35}
	if got := IdealBand(b.IdealMin, b, BandNormal); got != 1 {
		t.Errorf("IdealBand at IdealMin = %v, want exactly 1", got)
	}
	if got := IdealBand(b.IdealMax, b, BandNormal); got != 1 {
		t.Errorf("IdealBand at IdealMax = %v, want exactly 1", got)
	}
}

func TestSaturatingScore(t *testing.T) {
	if got := SaturatingScore(2, 2, 12); got != 0 {
		t.Errorf("SaturatingScore at start = %v, want exactly 0", got)
	}
	if got := SaturatingScore(12, 2, 12); got != 1 {
		t.Errorf("SaturatingScore at saturation = %v, want exactly 1", got)
	}
	if got := SaturatingScore(7, 2, 12); !almostEqual(got, 0.5) {
		t.Errorf("SaturatingScore midpoint = %v, want 0.5", got)
	}
	if got := SaturatingScore(-3, 2, 12); got != 0 {
		t.Errorf("SaturatingScore below start = %v, want 0", got)
	}
	if got := SaturatingScore(100, 2, 12); got != 1 {
		t.Errorf("SaturatingScore above saturation = %v, want 1", got)
	}
}

func TestWeightedAverage(t *testing.T) {
	if got := WeightedAverage(nil); got != 0 {
		t.Errorf("WeightedAverage(nil) = %v, want 0", got)
	}
	if got := WeightedAverage([]Weighted{{Weight: 0, Value: 1}, {Weight: 0, Value: 0.5}}); got != 0 {
		t.Errorf("WeightedAverage with zero weights = %v, want 0", got)
	}
	if got := WeightedAverage([]Weighted{{Weight: 1, Value: 1}, {Weight: 1, Value: 0}}); !almostEqual(got, 0.5) {
		t.Errorf("WeightedAverage = %v, want 0.5", got)
	}
	// weights need not sum to 1
	if got := WeightedAverage([]Weighted{{Weight: 3, Value: 0.2}, {Weight: 1, Value: 0.6}}); !almostEqual(got, 0.3) {
		t.Errorf("WeightedAverage = %v, want 0.3", got)
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{-4, 0, "-4"},
		{90, 0, "90"},
		{8, 1, "8.0"},
		{2.5, 0, "3"},
		{-2.5, 0, "-3"},
		{0.25, 1, "0.3"},
		{17.4, 0, "17"},
		{2.1, 1, "2.1"},
	}
	for _, tt := range tests {
		if got := fixed(tt.value, tt.decimals); got != tt.want {
			t.Errorf("fixed(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	tests := []struct {
		date, timezone, want string
	}{
		{"2025-11-10", "UTC", "Mon 10 Nov"},
		{"2025-11-10", "Europe/London", "Mon 10 Nov"},
		{"2025-11-10", "Pacific/Honolulu", "Mon 10 Nov"},
		{"2025-07-01", "Asia/Tokyo", "Tue 1 Jul"},
		{"2025-11-10", "Pacific/Kiritimati", "Tue 11 Nov"},
		{"2025-11-10", "Not/AZone", "2025-11-10"},
		{"2025-11-10", "", "2025-11-10"},
		{"someday", "UTC", "someday"},
	}
	for _, tt := range tests {
		if got := dayLabel(tt.date, tt.timezone); got != tt.want {
			t.Errorf("dayLabel(%q, %q) = %q, want %q", tt.date, tt.timezone, got, tt.want)
		}
	}
}
