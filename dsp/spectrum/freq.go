package spectrum

import "fmt"

// FFTFreq returns the frequency in Hz of each bin of a length-n DFT of a
// series sampled every dt seconds.
//
// Bins 0..(n-1)/2 hold non-negative frequencies, the rest negative ones, so
// for even n the Nyquist bin is reported as -1/(2 dt).
func FFTFreq(n int, dt float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fftfreq length must be > 0: %d", n)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("fftfreq sample interval must be > 0: %f", dt)
	}

	out := make([]float64, n)
	df := 1 / (float64(n) * dt)
	half := (n-1)/2 + 1
	for i := range half {
		out[i] = float64(i) * df
	}
	for i := half; i < n; i++ {
		out[i] = float64(i-n) * df
	}
	return out, nil
}

// RFFTFreq returns the n/2+1 non-negative bin frequencies of a length-n DFT.
func RFFTFreq(n int, dt float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("rfftfreq length must be > 0: %d", n)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("rfftfreq sample interval must be > 0: %f", dt)
	}

	out := make([]float64, n/2+1)
	df := 1 / (float64(n) * dt)
	for i := range out {
		out[i] = float64(i) * df
	}
	return out, nil
}
