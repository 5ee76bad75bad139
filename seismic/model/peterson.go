package model

import "math"

// Peterson (1993) noise models. Each band starting at period P[i] gives the
// acceleration power as A[i] + B[i]*log10(T) dB re 1 (m/s²)²/Hz for periods
// T in [P[i], P[i+1]).
var (
	nlnmPeriods = []float64{
		0.1, 0.17, 0.4, 0.8, 1.24, 2.4, 4.3, 5.0, 6.0, 10.0, 12.0,
		15.6, 21.9, 31.6, 45.0, 70.0, 101.0, 154.0, 328.0, 600.0,
		10000.0, 100000.0,
	}
	nlnmA = []float64{
		-162.36, -166.7, -170.0, -166.4, -168.6, -159.98, -141.1,
		-71.36, -97.26, -132.18, -205.27, -37.65, -114.37, -160.58,
		-187.5, -216.47, -185.0, -168.34, -217.43, -258.28, -346.88,
	}
	nlnmB = []float64{
		5.64, 0.0, -8.3, 28.9, 52.48, 29.81, 0.0, -99.77, -66.49,
		-31.57, 36.16, -104.33, -47.1, -16.28, 0.0, 15.7, 0.0, -7.61,
		11.9, 26.6, 48.75,
	}

	nhnmPeriods = []float64{
		0.1, 0.22, 0.32, 0.8, 3.8, 4.6, 6.3, 7.9, 15.4, 20.0, 354.8,
		100000.0,
	}
	nhnmA = []float64{
		-108.73, -150.34, -122.31, -116.85, -108.48, -74.66, 0.66,
		-93.37, 73.54, -151.52, -206.66,
	}
	nhnmB = []float64{
		-17.23, -80.5, -23.87, 32.51, 18.08, -32.95, -127.18, -22.42,
		-162.98, 10.01, 31.63,
	}
)

// NLNM returns the Peterson new low noise model as an acceleration curve.
func NLNM() Curve {
	return petersonCurve(nlnmPeriods, nlnmA, nlnmB)
}

// NHNM returns the Peterson new high noise model as an acceleration curve.
func NHNM() Curve {
	return petersonCurve(nhnmPeriods, nhnmA, nhnmB)
}

// PetersonDB evaluates a Peterson model in dB at period t. ok is false
// outside the tabulated period range.
func PetersonDB(high bool, t float64) (db float64, ok bool) {
	periods, a, b := nlnmPeriods, nlnmA, nlnmB
	if high {
		periods, a, b = nhnmPeriods, nhnmA, nhnmB
	}
	if t < periods[0] || t > periods[len(periods)-1] {
		return 0, false
	}
	i := len(a) - 1
	for j := range a {
		if t < periods[j+1] {
			i = j
			break
		}
	}
	return a[i] + b[i]*math.Log10(t), true
}

// petersonCurve samples each band at its lower period edge and the last
// band at the upper limit.
func petersonCurve(periods, a, b []float64) Curve {
	db := make([]float64, len(periods))
	for i := range a {
		db[i] = a[i] + b[i]*math.Log10(periods[i])
	}
	last := len(a) - 1
	db[len(periods)-1] = a[last] + b[last]*math.Log10(periods[len(periods)-1])

	c, err := FromPeriodDB(periods, db, Acceleration)
	if err != nil {
		panic(err)
	}
	return c
}
