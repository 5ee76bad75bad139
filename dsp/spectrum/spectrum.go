package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// splitPool recycles the real/imaginary planes used to hand complex bins to
// the vecmath kernels.
var splitPool = sync.Pool{
	New: func() any { return new([]float64) },
}

// reduceBins deinterleaves in and applies kernel(dst, re, im) into a fresh
// slice of len(in).
func reduceBins(in []complex128, kernel func(dst, re, im []float64)) []float64 {
	if len(in) == 0 {
		return nil
	}

	n := len(in)
	p := splitPool.Get().(*[]float64)
	if cap(*p) < 2*n {
		*p = make([]float64, 2*n)
	}
	planes := (*p)[:2*n]
	re, im := planes[:n], planes[n:]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, n)
	kernel(out, re, im)
	splitPool.Put(p)
	return out
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	return reduceBins(in, vecmath.Magnitude)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	return reduceBins(in, vecmath.Power)
}

// SmoothFractionalOctave replaces every value by the arithmetic mean of the
// values whose frequency lies within 1/fraction octave centred on it.
//
// freqHz must be positive and strictly increasing.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	return smoothOctave(freqHz, values, fraction, false)
}

// SmoothFractionalOctaveLog is [SmoothFractionalOctave] with the mean taken
// in the logarithmic domain, i.e. the average of the values in dB. This is
// the usual way to smooth seismic noise PSDs, whose values span many decades.
// values must be positive.
func SmoothFractionalOctaveLog(freqHz, values []float64, fraction int) ([]float64, error) {
	for i, v := range values {
		if !(v > 0) {
			return nil, fmt.Errorf("log smoothing requires positive values, got %g at index %d", v, i)
		}
	}
	return smoothOctave(freqHz, values, fraction, true)
}

func smoothOctave(freqHz, values []float64, fraction int, logDomain bool) ([]float64, error) {
	if len(freqHz) == 0 {
		return nil, fmt.Errorf("fractional-octave smoothing requires non-empty inputs")
	}
	if len(freqHz) != len(values) {
		return nil, fmt.Errorf("fractional-octave input length mismatch: %d != %d", len(freqHz), len(values))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("fractional-octave fraction must be > 0: %d", fraction)
	}
	for i, f := range freqHz {
		if f <= 0 {
			return nil, fmt.Errorf("fractional-octave frequencies must be > 0 at index %d", i)
		}
		if i > 0 && f <= freqHz[i-1] {
			return nil, fmt.Errorf("fractional-octave frequencies must be strictly increasing at index %d", i)
		}
	}

	// prefix[i] is the sum of the first i (transformed) values.
	prefix := make([]float64, len(values)+1)
	for i, v := range values {
		if logDomain {
			v = math.Log(v)
		}
		prefix[i+1] = prefix[i] + v
	}

	half := math.Exp2(1 / (2 * float64(fraction)))
	out := make([]float64, len(values))
	lo, hi := 0, 0
	for i, f := range freqHz {
		// Band edges move monotonically with f.
		for lo < len(freqHz) && freqHz[lo] < f/half {
			lo++
		}
		if hi < lo {
			hi = lo
		}
		for hi < len(freqHz) && freqHz[hi] <= f*half {
			hi++
		}

		mean := (prefix[hi] - prefix[lo]) / float64(hi-lo)
		if logDomain {
			mean = math.Exp(mean)
		}
		out[i] = mean
	}
	return out, nil
}
