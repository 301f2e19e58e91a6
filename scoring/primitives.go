package scoring

import "math"

// Band describes an ideal range with linear fall-off to Min and Max
type Band struct {
	Min      float64
	IdealMin float64
	IdealMax float64
	Max      float64
}

// BandMode selects whether IdealBand ramps normally or inverted
type BandMode int

const (
	BandNormal BandMode = iota
	BandInverse
)

// Weighted is one entry of a weighted average
type Weighted struct {
	Weight float64
	Value  float64
}

// IdealBelow is 1 at or below ideal and falls linearly to 0 at ideal+tolerance
func IdealBelow(value, ideal, tolerance float64) float64 {
	if value <= ideal {
		return 1
	}
	if value >= ideal+tolerance {
		return 0
	}
	return clamp(1 - (value-ideal)/tolerance)
}

// IdealAbove is 1 at or above ideal and falls linearly to 0 at ideal-tolerance
func IdealAbove(value, ideal, tolerance float64) float64 {
	if value >= ideal {
		return 1
	}
	if value <= ideal-tolerance {
		return 0
	}
	return clamp((value - (ideal - tolerance)) / tolerance)
}

// IdealBand is 1 inside [IdealMin, IdealMax] and ramps to 0 at Min and Max.
// In BandInverse mode the ramps are flipped and values outside [Min, Max] score 1.
func IdealBand(value float64, b Band, mode BandMode) float64 {
	if value >= b.IdealMin && value <= b.IdealMax {
		return 1
	}
	if value <= b.Min || value >= b.Max {
		if mode == BandInverse {
			return 1
		}
		return 0
	}

	var ratio float64
	if value < b.IdealMin {
		ratio = (value - b.Min) / (b.IdealMin - b.Min)
	} else {
		ratio = (b.Max - value) / (b.Max - b.IdealMax)
	}
	if mode == BandInverse {
		return clamp(1 - ratio)
	}
	return clamp(ratio)
}

// SaturatingScore is 0 at or below start, 1 at or above saturation, linear between
func SaturatingScore(value, start, saturation float64) float64 {
	if value <= start {
		return 0
	}
	if value >= saturation {
		return 1
	}
	return clamp((value - start) / (saturation - start))
}

// WeightedAverage returns sum(weight*value)/sum(weight), or 0 when the weights sum to 0
func WeightedAverage(entries []Weighted) float64 {
	var total, sum float64
	for _, e := range entries {
		total += e.Weight
		sum += e.Weight * e.Value
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
