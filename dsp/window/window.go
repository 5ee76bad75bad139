package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	// TypeCosineTaper is a split-cosine-bell (Tukey) taper: flat in the
	// middle with cosine ramps over the configured fraction of the length.
	TypeCosineTaper
)

// DefaultTaperFraction is the total tapered share of a [TypeCosineTaper]
// window, split evenly between both ends.
const DefaultTaperFraction = 0.1

type shape struct {
	name string
	at   func(x float64, cfg config) float64
}

var shapes = map[Type]shape{
	TypeRectangular: {"rectangular", func(float64, config) float64 { return 1 }},
	TypeHann:        {"hann", func(x float64, _ config) float64 { return raisedCosine(x, 0.5) }},
	TypeHamming:     {"hamming", func(x float64, _ config) float64 { return raisedCosine(x, 0.54) }},
	TypeCosineTaper: {"cosine-taper", func(x float64, cfg config) float64 { return cosineTaper(x, cfg.taper) }},
}

// Types returns all window types in declaration order.
func Types() []Type {
	return []Type{TypeRectangular, TypeHann, TypeHamming, TypeCosineTaper}
}

// String returns the lower-case window name.
func (t Type) String() string {
	if s, ok := shapes[t]; ok {
		return s.name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a window name such as "hann" to its Type. "tukey" is
// accepted for [TypeCosineTaper].
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "tukey" {
		return TypeCosineTaper, nil
	}
	for _, t := range Types() {
		if shapes[t].name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown window %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
	taper    float64
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithTaperFraction sets the tapered share of a [TypeCosineTaper] window.
// Values are clamped to [0, 1]; 0 gives a rectangular and 1 a Hann window.
func WithTaperFraction(p float64) Option {
	return func(c *config) {
		c.taper = math.Min(1, math.Max(0, p))
	}
}

// Generate returns window coefficients of the given length, or nil for a
// non-positive length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{taper: DefaultTaperFraction}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s, ok := shapes[t]
	if !ok {
		s = shapes[TypeRectangular]
	}

	denom := float64(length - 1)
	if cfg.periodic && length > 1 {
		denom = float64(length)
	}
	out := make([]float64, length)
	for i := range out {
		x := 0.5
		if denom > 0 {
			x = float64(i) / denom
		}
		out[i] = s.at(x, cfg)
	}
	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}
	return Generate(TypeHann, size, opts...), nil
}

// SumSquares returns sum(w[n]^2), the power normalization of a window.
func SumSquares(coeffs []float64) float64 {
	s := 0.0
	for _, c := range coeffs {
		s += c * c
	}
	return s
}

// CoherentGain returns the mean coefficient, the amplitude gain a window
// applies to a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	cg, err := CoherentGain(coeffs)
	if err != nil {
		return 0, err
	}
	if cg == 0 {
		return 0, errZeroCoherentGain
	}
	n := float64(len(coeffs))
	return SumSquares(coeffs) / (n * cg * cg), nil
}

// ApplyCoefficients multiplies samples with coefficients into dst.
func ApplyCoefficients(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)
	return nil
}

// raisedCosine evaluates a - (1-a) cos(2 pi x).
func raisedCosine(x, a float64) float64 {
	return a - (1-a)*math.Cos(2*math.Pi*x)
}

func cosineTaper(x, p float64) float64 {
	if p <= 0 {
		return 1
	}
	edge := p / 2
	switch {
	case x < edge:
		return 0.5 * (1 - math.Cos(math.Pi*x/edge))
	case x > 1-edge:
		return 0.5 * (1 - math.Cos(math.Pi*(1-x)/edge))
	default:
		return 1
	}
}
