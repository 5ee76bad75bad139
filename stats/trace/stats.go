// Package trace computes summary statistics of seismogram traces and the
// RMS amplitude implied by a power spectral density.
package trace

import (
	"errors"
	"fmt"
	"math"
)

var errBand = errors.New("trace: invalid frequency band")

// Stats holds time-domain statistics of a trace.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Peak     float64 // max |x|
	Variance float64 // population variance
	Skewness float64
	Kurtosis float64 // excess kurtosis, 0 for a Gaussian
}

// Calculate computes all statistics in one pass. Moments use Welford's
// online update.
func Calculate(x []float64) Stats {
	var acc Accumulator
	acc.Update(x)
	return acc.Result()
}

// RMS returns the root-mean-square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(x)))
}

// Accumulator gathers statistics across several blocks, e.g. the
// realizations of a noise ensemble. Results equal [Calculate] on the
// concatenated samples. The zero value is ready to use.
type Accumulator struct {
	n          int
	mean       float64
	m2, m3, m4 float64
	sumSq      float64
	peak       float64
}

// Update adds samples to the running statistics.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.n++
		ni := float64(a.n)

		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		// m4 before m3 before m2.
		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(ni-2) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		a.sumSq += x * x
		if abs := math.Abs(x); abs > a.peak {
			a.peak = abs
		}
	}
}

// Result returns the statistics of all samples seen so far.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)
	s := Stats{
		Length:   a.n,
		Mean:     a.mean,
		RMS:      math.Sqrt(a.sumSq / nf),
		Peak:     a.peak,
		Variance: a.m2 / nf,
	}
	if s.Variance > 0 {
		s.Skewness = (a.m3 / nf) / (s.Variance * math.Sqrt(s.Variance))
		s.Kurtosis = (a.m4/nf)/(s.Variance*s.Variance) - 3
	}
	return s
}

// Reset clears the accumulator.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// BandRMS integrates a one-sided PSD over [fmin, fmax] with the trapezoid
// rule and returns the square root, the RMS amplitude of a signal with that
// spectrum. freqs must be ascending. Segments partially inside the band are
// clipped with linear interpolation.
func BandRMS(freqs, psd []float64, fmin, fmax float64) (float64, error) {
	if len(freqs) != len(psd) {
		return 0, fmt.Errorf("%w: %d frequencies, %d values", errBand, len(freqs), len(psd))
	}
	if !(fmin < fmax) {
		return 0, fmt.Errorf("%w: [%g, %g]", errBand, fmin, fmax)
	}

	var area float64
	for i := 1; i < len(freqs); i++ {
		f0, f1 := freqs[i-1], freqs[i]
		if f1 <= f0 || f1 <= fmin || f0 >= fmax {
			continue
		}
		p0, p1 := psd[i-1], psd[i]
		lo, hi := math.Max(f0, fmin), math.Min(f1, fmax)
		slope := (p1 - p0) / (f1 - f0)
		plo := p0 + slope*(lo-f0)
		phi := p0 + slope*(hi-f0)
		area += 0.5 * (plo + phi) * (hi - lo)
	}
	if area < 0 {
		return 0, fmt.Errorf("%w: negative power", errBand)
	}
	return math.Sqrt(area), nil
}
