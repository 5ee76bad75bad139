package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
	"github.com/cwbudde/algo-seisnoise/dsp/dft"
	"github.com/cwbudde/algo-seisnoise/dsp/interp"
	"github.com/cwbudde/algo-seisnoise/dsp/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrInvalidSpectrum = errors.New("noise: invalid spectrum")
	ErrInvalidGrid     = errors.New("noise: invalid sample grid")
)

// Synthesizer generates spectrally shaped noise. It owns its random source,
// so a single Synthesizer must not be used from several goroutines at once;
// use one Synthesizer per goroutine instead.
type Synthesizer struct {
	rng  *rand.Rand
	mode interp.Mode
	plan *dft.Plan
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed seeds the synthesizer's random source for reproducible output.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses rng as the random source. A nil rng is ignored.
func WithRand(rng *rand.Rand) Option {
	return func(s *Synthesizer) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithMode sets the interpolation mode used to resample the target curve.
// The default is [interp.LogLog].
func WithMode(mode interp.Mode) Option {
	return func(s *Synthesizer) {
		s.mode = mode
	}
}

// NewSynthesizer creates a synthesizer. Without [WithSeed] or [WithRand] the
// random source is seeded from the clock.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{mode: interp.LogLog}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Mode returns the configured interpolation mode.
func (s *Synthesizer) Mode() interp.Mode {
	return s.mode
}

// Synthesize returns npts samples spaced dt seconds apart whose one-sided
// power spectral density follows the curve (freqs, power). freqs must be
// ascending; power is in units²/Hz.
func (s *Synthesizer) Synthesize(dt float64, npts int, freqs, power []float64) ([]float64, error) {
	return s.SynthesizeWithMode(dt, npts, freqs, power, s.mode)
}

// SynthesizeWithMode is [Synthesizer.Synthesize] with an explicit
// interpolation mode.
func (s *Synthesizer) SynthesizeWithMode(dt float64, npts int, freqs, power []float64, mode interp.Mode) ([]float64, error) {
	if err := validateCurve(freqs, power); err != nil {
		return nil, err
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: dt must be > 0: %v", ErrInvalidGrid, dt)
	}
	if npts < 1 {
		return nil, fmt.Errorf("%w: npts must be >= 1: %d", ErrInvalidGrid, npts)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", interp.ErrInvalidMode, mode)
	}

	gain, err := s.binGains(dt, npts, freqs, power, mode)
	if err != nil {
		return nil, err
	}

	if s.plan == nil || s.plan.Len() != npts {
		plan, err := dft.NewPlan(npts)
		if err != nil {
			return nil, fmt.Errorf("noise: %w", err)
		}
		s.plan = plan
	}

	seed := make([]complex128, npts)
	for i := range seed {
		seed[i] = complex(s.rng.NormFloat64(), 0)
	}

	bins := make([]complex128, npts)
	if err := s.plan.Forward(bins, seed); err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}

	// Keep the random phase, replace the magnitude with the target amplitude.
	mag := spectrum.Magnitude(bins)
	for k, b := range bins {
		if mag[k] == 0 {
			bins[k] = complex(gain[k], 0)
			continue
		}
		bins[k] = b * complex(gain[k]/mag[k], 0)
	}

	if err := s.plan.Inverse(seed, bins); err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}

	re := make([]float64, npts)
	for i, v := range seed {
		re[i] = real(v)
	}
	out := make([]float64, npts)
	vecmath.ScaleBlock(out, re, math.Sqrt(float64(npts)/(2*dt)))
	return out, nil
}

// binGains resamples sqrt(power) onto |f| for every DFT bin. The DC bin is
// always interpolated linearly since log-log is undefined at 0 Hz.
func (s *Synthesizer) binGains(dt float64, npts int, freqs, power []float64, mode interp.Mode) ([]float64, error) {
	amp := make([]float64, len(power))
	for i, p := range power {
		amp[i] = math.Sqrt(p)
	}

	binFreqs, err := spectrum.FFTFreq(npts, dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}

	gain := make([]float64, npts)
	query := make([]float64, 0, npts)
	index := make([]int, 0, npts)
	for k, f := range binFreqs {
		if f == 0 {
			dc, err := interp.LinearAt(freqs, amp, 0)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidSpectrum, err)
			}
			gain[k] = dc
			continue
		}
		query = append(query, math.Abs(f))
		index = append(index, k)
	}

	if len(query) > 0 {
		vals, err := interp.Interpolate(query, freqs, amp, mode)
		if err != nil {
			if errors.Is(err, interp.ErrInvalidMode) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrInvalidSpectrum, err)
		}
		for i, k := range index {
			gain[k] = math.Abs(vals[i])
		}
	}
	return gain, nil
}

func validateCurve(freqs, power []float64) error {
	if len(freqs) == 0 || len(power) == 0 {
		return fmt.Errorf("%w: empty curve", ErrInvalidSpectrum)
	}
	if len(freqs) != len(power) {
		return fmt.Errorf("%w: length mismatch %d != %d", ErrInvalidSpectrum, len(freqs), len(power))
	}
	for i, p := range power {
		if !core.IsFinite(p) || p < 0 {
			return fmt.Errorf("%w: power must be finite and >= 0, got %v at index %d", ErrInvalidSpectrum, p, i)
		}
	}
	for i, f := range freqs {
		if !core.IsFinite(f) || f < 0 {
			return fmt.Errorf("%w: frequency must be finite and >= 0, got %v at index %d", ErrInvalidSpectrum, f, i)
		}
	}
	return nil
}
