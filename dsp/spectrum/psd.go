package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
	"github.com/cwbudde/algo-seisnoise/dsp/dft"
	"github.com/cwbudde/algo-seisnoise/dsp/window"
)

// PSDOption configures [Welch].
type PSDOption func(*psdConfig)

type psdConfig struct {
	segment    int
	overlap    float64
	window     window.Type
	removeMean bool
}

func defaultPSDConfig() psdConfig {
	return psdConfig{
		overlap: 0.5,
		window:  window.TypeHann,
	}
}

// WithSegmentLength sets the Welch segment (FFT) length in samples.
// Zero or a value larger than the input uses the whole input as one segment.
func WithSegmentLength(n int) PSDOption {
	return func(c *psdConfig) {
		if n > 0 {
			c.segment = n
		}
	}
}

// WithOverlap sets the fractional overlap between segments, in [0, 1).
func WithOverlap(overlap float64) PSDOption {
	return func(c *psdConfig) {
		if overlap >= 0 && overlap < 1 {
			c.overlap = overlap
		}
	}
}

// WithWindow selects the segment taper.
func WithWindow(t window.Type) PSDOption {
	return func(c *psdConfig) {
		c.window = t
	}
}

// WithMeanRemoval subtracts each segment's mean before tapering.
func WithMeanRemoval() PSDOption {
	return func(c *psdConfig) {
		c.removeMean = true
	}
}

// Welch estimates the one-sided power spectral density of x, sampled every dt
// seconds, by averaging modified periodograms of overlapping segments.
//
// The result has density scaling (units²/Hz): integrating psd over freqs
// approximates the variance of x. freqs holds segment/2+1 bins from DC up.
func Welch(x []float64, dt float64, opts ...PSDOption) (freqs, psd []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("psd input must not be empty")
	}
	if !(dt > 0) {
		return nil, nil, fmt.Errorf("psd sample interval must be > 0: %f", dt)
	}
	if i := core.FirstNonFinite(x); i >= 0 {
		return nil, nil, fmt.Errorf("psd input is not finite at index %d: %v", i, x[i])
	}

	cfg := defaultPSDConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	seg := cfg.segment
	if seg <= 0 || seg > len(x) {
		seg = len(x)
	}
	hop := int(math.Round(float64(seg) * (1 - cfg.overlap)))
	if hop < 1 {
		hop = 1
	}

	win := window.Generate(cfg.window, seg, window.WithPeriodic())
	winPower := window.SumSquares(win)
	if winPower == 0 {
		return nil, nil, fmt.Errorf("psd window %v has zero power", cfg.window)
	}

	plan, err := dft.NewPlan(seg)
	if err != nil {
		return nil, nil, fmt.Errorf("psd: %w", err)
	}

	nBins := seg/2 + 1
	acc := make([]float64, nBins)
	tapered := make([]float64, seg)
	in := make([]complex128, seg)
	out := make([]complex128, seg)

	segments := 0
	for start := 0; start+seg <= len(x); start += hop {
		chunk := x[start : start+seg]
		if err := window.ApplyCoefficients(tapered, chunk, win); err != nil {
			return nil, nil, err
		}

		mean := 0.0
		if cfg.removeMean {
			for _, v := range chunk {
				mean += v
			}
			mean /= float64(seg)
		}
		for i, v := range tapered {
			in[i] = complex(v-mean*win[i], 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, nil, fmt.Errorf("psd: %w", err)
		}
		for k, p := range Power(out[:nBins]) {
			acc[k] += p
		}
		segments++
	}

	scale := dt / (winPower * float64(segments))
	doubleEnd := (seg + 1) / 2
	for k := range acc {
		acc[k] *= scale
		if k > 0 && k < doubleEnd {
			acc[k] *= 2
		}
	}

	freqs, err = RFFTFreq(seg, dt)
	if err != nil {
		return nil, nil, err
	}
	return freqs, acc, nil
}

// Periodogram is a single-segment, untapered [Welch] estimate.
func Periodogram(x []float64, dt float64) (freqs, psd []float64, err error) {
	return Welch(x, dt, WithWindow(window.TypeRectangular))
}
