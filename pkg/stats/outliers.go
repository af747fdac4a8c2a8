package stats

import "math"

// Fences is the closed band [Lower, Upper] of values considered normal.
type Fences struct {
	Lower float64
	Upper float64
}

// Outside reports whether v lies beyond the fences. NaN is never outside.
func (f Fences) Outside(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// IQRFences computes [Q1 - k*IQR, Q3 + k*IQR] over the finite values of x.
func IQRFences(x []float64, k float64) Fences {
	vals := Finite(x)
	if len(vals) == 0 {
		return Fences{Lower: math.NaN(), Upper: math.NaN()}
	}
	q1 := Percentile(vals, 25)
	q3 := Percentile(vals, 75)
	iqr := q3 - q1
	return Fences{Lower: q1 - k*iqr, Upper: q3 + k*iqr}
}

// PercentileFences uses the lower and upper percentiles of x as fences.
func PercentileFences(x []float64, lower, upper float64) Fences {
	vals := Finite(x)
	if len(vals) == 0 {
		return Fences{Lower: math.NaN(), Upper: math.NaN()}
	}
	return Fences{Lower: Percentile(vals, lower), Upper: Percentile(vals, upper)}
}

// ZScoreFlags marks values whose absolute z-score exceeds threshold.
// Missing values and zero-variance columns are never flagged.
func ZScoreFlags(x []float64, threshold float64) []bool {
	flags := make([]bool, len(x))
	for i, z := range ZScores(x) {
		flags[i] = math.Abs(z) > threshold
	}
	return flags
}

// FenceFlags marks values outside f.
func FenceFlags(x []float64, f Fences) []bool {
	flags := make([]bool, len(x))
	for i, v := range x {
		flags[i] = f.Outside(v)
	}
	return flags
}
