// Package core holds small numeric helpers shared by the dsp and seismic
// packages: tolerant comparison, finiteness checks and the dB and
// period/frequency conversions used by noise-model tables.
package core

import "math"

// NearlyEqual reports whether a and b agree to within eps relative to the
// larger magnitude. The comparison is purely relative so it stays meaningful
// for noise powers around 1e-18. A non-positive eps selects 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	if eps <= 0 {
		eps = 1e-12
	}
	return math.Abs(a-b) <= eps*math.Max(math.Abs(a), math.Abs(b))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf in xs, or -1.
func FirstNonFinite(xs []float64) int {
	for i, x := range xs {
		if !IsFinite(x) {
			return i
		}
	}
	return -1
}

// DBPowerToLinear converts a power level in dB (10 log10 convention) to a
// linear power value.
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, 0.1*db)
}

// LinearPowerToDB converts a linear power value to dB. Zero maps to -Inf and
// negative input to NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	default:
		return 10 * math.Log10(power)
	}
}

// PeriodToFrequency converts a period in seconds to Hz. A zero period maps
// to +Inf.
func PeriodToFrequency(period float64) float64 {
	if period == 0 {
		return math.Inf(1)
	}
	return 1 / period
}

// FrequencyToPeriod converts Hz to a period in seconds. 0 Hz maps to +Inf.
func FrequencyToPeriod(freq float64) float64 {
	return PeriodToFrequency(freq)
}
