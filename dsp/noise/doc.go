// Package noise synthesizes random time series with a prescribed power
// spectral density.
//
// A [Synthesizer] draws Gaussian white noise, keeps only its random phase in
// the frequency domain, imposes the square root of the target density as the
// bin magnitudes and transforms back. The scaling is chosen so that the
// one-sided density estimate of the output matches the target curve.
package noise
