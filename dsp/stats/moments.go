package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics reported for a feature series.
type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summarize computes mean, population standard deviation, min and max over
// the series. An empty series yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean := stat.Mean(values, nil)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return Summary{
		Mean: mean,
		Std:  math.Sqrt(variance),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
}

// CoefficientOfVariation returns std/mean for the series, or 0 when the mean
// is zero. Used by stability scores that penalize relative spread.
func CoefficientOfVariation(values []float64) float64 {
	s := Summarize(values)
	if s.Mean == 0 {
		return 0
	}
	return s.Std / s.Mean
}

// FilterPositive returns the subset of values strictly greater than zero.
// Pitch tracks use 0 as the unvoiced marker, so statistics over pitch must
// exclude those frames first.
func FilterPositive(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}
