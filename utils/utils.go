package utils

import "math"

// FormatFloat rounds f to the given number of decimals. NaN and Inf pass through.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow(10, float64(round))
	return math.Round(f*scale) / scale
}

func IntMin(i1, i2 int) int {
	if i1 < i2 {
		return i1
	}
	return i2
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp bounds v to [lower, upper].
func Clamp(v, lower, upper int) int {
	return IntMax(lower, IntMin(v, upper))
}
