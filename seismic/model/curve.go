package model

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
)

var ErrInvalidCurve = errors.New("model: invalid curve")

// Curve is a reference power spectral density sampled at Freqs (Hz,
// ascending). Power is in Unit²/Hz. A curve with UnitNone is taken to be in
// whatever unit it is applied to.
type Curve struct {
	Freqs []float64
	Power []float64
	Unit  Unit
}

// Len returns the number of curve nodes.
func (c Curve) Len() int {
	return len(c.Freqs)
}

// Clone returns a deep copy of c.
func (c Curve) Clone() Curve {
	return Curve{
		Freqs: append([]float64(nil), c.Freqs...),
		Power: append([]float64(nil), c.Power...),
		Unit:  c.Unit,
	}
}

// Validate checks that the curve has matching non-empty slices, finite
// non-negative values and ascending frequencies.
func (c Curve) Validate() error {
	if len(c.Freqs) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidCurve)
	}
	if len(c.Freqs) != len(c.Power) {
		return fmt.Errorf("%w: %d frequencies, %d power values", ErrInvalidCurve, len(c.Freqs), len(c.Power))
	}
	if c.Unit != UnitNone && !c.Unit.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidCurve, ErrInvalidUnit)
	}
	for i := range c.Freqs {
		f, p := c.Freqs[i], c.Power[i]
		if !core.IsFinite(f) || f < 0 {
			return fmt.Errorf("%w: frequency %v at index %d", ErrInvalidCurve, f, i)
		}
		if !core.IsFinite(p) || p < 0 {
			return fmt.Errorf("%w: power %v at index %d", ErrInvalidCurve, p, i)
		}
		if i > 0 && f < c.Freqs[i-1] {
			return fmt.Errorf("%w: frequencies not ascending at index %d", ErrInvalidCurve, i)
		}
	}
	return nil
}

// FromPeriodDB builds a curve from (period s, power dB) pairs, the form
// noise models are usually published in. The result is sorted by ascending
// frequency.
func FromPeriodDB(periods, db []float64, unit Unit) (Curve, error) {
	if len(periods) != len(db) {
		return Curve{}, fmt.Errorf("%w: %d periods, %d values", ErrInvalidCurve, len(periods), len(db))
	}
	c := Curve{
		Freqs: make([]float64, len(periods)),
		Power: make([]float64, len(periods)),
		Unit:  unit,
	}
	n := len(periods)
	for i := range periods {
		if !(periods[i] > 0) {
			return Curve{}, fmt.Errorf("%w: period %v at index %d", ErrInvalidCurve, periods[i], i)
		}
		c.Freqs[n-1-i] = core.PeriodToFrequency(periods[i])
		c.Power[n-1-i] = core.DBPowerToLinear(db[i])
	}
	return c, nil
}
