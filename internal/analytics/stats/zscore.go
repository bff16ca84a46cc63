// Package stats provides the statistical baselines used by the value detectors:
// population z-scores, per-address baselines and rolling trend monitors.
package stats

import "math"

// relTolerance is the relative size below which a standard deviation is treated as zero.
const relTolerance = 1e-12

// MeanStd returns the population mean and population standard deviation.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

// ZScores returns the population z-score of every value.
//
// An empty input yields an empty result and a single value yields [0].
// When the values have no spread, or their moments overflow float64, every
// score is exactly 0.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) < 2 {
		return out
	}
	mean, std := MeanStd(values)
	if negligible(std, mean) {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// ZScore scores v against a precomputed mean and standard deviation.
func ZScore(v, mean, std float64) float64 {
	if negligible(std, mean) || !finite(v) {
		return 0
	}
	return (v - mean) / std
}

func negligible(std, mean float64) bool {
	if !finite(std) || !finite(mean) {
		return true
	}
	return std <= relTolerance*math.Max(1, math.Abs(mean))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
