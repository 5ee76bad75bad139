package model

import (
	"fmt"
	"math"
)

// Convention selects the frequency factors used when moving a power
// spectrum between displacement, velocity and acceleration.
//
// One time derivative multiplies the power spectrum by w^2 between
// displacement and velocity and by w^VelAccExponent between velocity and
// acceleration, where w = 2*pi*f when Angular is set and w = f otherwise.
type Convention struct {
	VelAccExponent float64
	Angular        bool
}

var (
	// ConventionPhysical is the exact relation |F{dx/dt}|^2 = (2*pi*f)^2 |F{x}|^2
	// for every step.
	ConventionPhysical = Convention{VelAccExponent: 2, Angular: true}

	// ConventionFrequency uses f^2 for every step with plain frequency f.
	// It differs from ConventionPhysical by (2*pi)^2 per step.
	ConventionFrequency = Convention{VelAccExponent: 2, Angular: false}

	// ConventionSource reproduces the factors of the reference seismogram
	// noise scripts: f^2 for displacement/velocity, f^1 for
	// velocity/acceleration.
	ConventionSource = Convention{VelAccExponent: 1, Angular: false}
)

// ParseConvention resolves "physical", "frequency" or "source".
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "physical", "":
		return ConventionPhysical, nil
	case "frequency":
		return ConventionFrequency, nil
	case "source", "legacy":
		return ConventionSource, nil
	default:
		return Convention{}, fmt.Errorf("model: invalid unit convention %q", s)
	}
}

// Convert returns a copy of c expressed in unit to. Integration divides by
// the step factor and differentiation multiplies by it. Power at 0 Hz is
// set to 0 whenever a factor is applied, since the factor is 0 or undefined
// there. If either unit is UnitNone the curve is copied unchanged.
func Convert(c Curve, to Unit, conv Convention) (Curve, error) {
	if (c.Unit != UnitNone && !c.Unit.Valid()) || (to != UnitNone && !to.Valid()) {
		return Curve{}, fmt.Errorf("%w: %v -> %v", ErrInvalidUnit, c.Unit, to)
	}
	if len(c.Freqs) != len(c.Power) {
		return Curve{}, fmt.Errorf("%w: %d frequencies, %d power values", ErrInvalidCurve, len(c.Freqs), len(c.Power))
	}

	out := c.Clone()
	if to == UnitNone || c.Unit == UnitNone || c.Unit == to {
		if to != UnitNone {
			out.Unit = to
		}
		return out, nil
	}
	out.Unit = to

	lo, hi := c.Unit, to
	integrate := to < c.Unit
	if integrate {
		lo, hi = to, c.Unit
	}

	for i, f := range out.Freqs {
		if f == 0 {
			out.Power[i] = 0
			continue
		}
		w := f
		if conv.Angular {
			w = 2 * math.Pi * f
		}

		factor := 1.0
		for u := lo; u < hi; u++ {
			factor *= stepFactor(u, w, conv)
		}
		if integrate {
			out.Power[i] /= factor
		} else {
			out.Power[i] *= factor
		}
	}
	return out, nil
}

// stepFactor is the power factor of one derivative starting at unit u.
func stepFactor(u Unit, w float64, conv Convention) float64 {
	if u == Displacement {
		return w * w
	}
	return math.Pow(w, conv.VelAccExponent)
}
