package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
)

var (
	ErrInvalidMode  = errors.New("interp: invalid interpolation mode")
	ErrInvalidCurve = errors.New("interp: invalid reference curve")
	ErrInvalidQuery = errors.New("interp: query is not finite")
)

// minNormal is the smallest positive normal float64. Zero amplitudes are
// raised to it before taking logarithms.
const minNormal = 0x1p-1022

// Mode selects the interpolation scheme.
type Mode int

const (
	LogLog Mode = iota
	Linear
)

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case LogLog:
		return "loglog"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	return m == LogLog || m == Linear
}

// ParseMode converts "linear" or "loglog" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loglog", "log-log":
		return LogLog, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Interpolate evaluates the curve (refX, refY) at |q| for every q in query.
//
// refX must be sorted ascending and have the same length as refY. Values
// outside the reference range take the nearest boundary value. NaN or
// infinite queries fail with [ErrInvalidQuery].
func Interpolate(query, refX, refY []float64, mode Mode) ([]float64, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
	if len(refX) == 0 || len(refY) == 0 {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidCurve)
	}
	if len(refX) != len(refY) {
		return nil, fmt.Errorf("%w: length mismatch %d != %d", ErrInvalidCurve, len(refX), len(refY))
	}
	if i := core.FirstNonFinite(query); i >= 0 {
		return nil, fmt.Errorf("%w: index %d: %v", ErrInvalidQuery, i, query[i])
	}

	if mode == Linear {
		out := make([]float64, len(query))
		for i, q := range query {
			out[i] = linearAt(refX, refY, math.Abs(q))
		}
		return out, nil
	}
	return logLog(query, refX, refY), nil
}

// LinearAt evaluates a single point with [Linear] semantics.
func LinearAt(refX, refY []float64, q float64) (float64, error) {
	if len(refX) == 0 || len(refX) != len(refY) {
		return 0, fmt.Errorf("%w: lengths %d and %d", ErrInvalidCurve, len(refX), len(refY))
	}
	if !core.IsFinite(q) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuery, q)
	}
	return linearAt(refX, refY, math.Abs(q)), nil
}

func linearAt(x, y []float64, q float64) float64 {
	last := len(x) - 1
	if q <= x[0] {
		return y[0]
	}
	if q >= x[last] {
		return y[last]
	}

	// x[j-1] < q <= x[j]
	j := sort.SearchFloat64s(x, q)
	if x[j] == q {
		return y[j]
	}
	t := (q - x[j-1]) / (x[j] - x[j-1])
	return y[j-1] + t*(y[j]-y[j-1])
}

func logLog(query, refX, refY []float64) []float64 {
	lx := make([]float64, 0, len(refX))
	ly := make([]float64, 0, len(refY))
	for i, x := range refX {
		if x <= 0 {
			continue
		}
		y := refY[i]
		if y == 0 {
			y = minNormal
		}
		lx = append(lx, math.Log10(x))
		ly = append(ly, math.Log10(y))
	}

	out := make([]float64, len(query))
	if len(lx) == 0 {
		for i := range out {
			out[i] = refY[0]
		}
		return out
	}

	for i, q := range query {
		q = math.Abs(q)
		if q == 0 {
			out[i] = math.Pow(10, ly[0])
			continue
		}
		out[i] = math.Pow(10, linearAt(lx, ly, math.Log10(q)))
	}
	return out
}
