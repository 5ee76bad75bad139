// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// It covers discrete Fourier bin frequencies, magnitude and power of complex
// bins, fractional-octave smoothing and one-sided power spectral density
// estimates (periodogram and Welch averaging) of real time series.
package spectrum
