package dft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	ErrInvalidLength  = errors.New("dft: length must be > 0")
	ErrLengthMismatch = errors.New("dft: buffer length mismatch")
)

// Plan is a reusable transform of fixed length. A Plan holds scratch memory
// and must not be used from multiple goroutines at once.
type Plan struct {
	n int

	// direct is set for power-of-two lengths.
	direct *algofft.Plan[complex128]

	// Bluestein state: padded plan, chirp w[k] = exp(-i*pi*k^2/n) and the
	// precomputed spectrum of the conjugate chirp filter.
	padded  *algofft.Plan[complex128]
	chirp   []complex128
	filterF []complex128
	work    []complex128
	workF   []complex128
}

// NewPlan prepares a transform of length n.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	p := &Plan{n: n}
	if n == 1 {
		return p, nil
	}

	if isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("dft: failed to create FFT plan: %w", err)
		}
		p.direct = plan
		return p, nil
	}

	m := nextPowerOf2(2*n - 1)
	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("dft: failed to create FFT plan: %w", err)
	}
	p.padded = plan

	p.chirp = make([]complex128, n)
	twoN := 2 * n
	for k := range n {
		// k^2 mod 2n keeps the angle small for large k.
		kk := (k * k) % twoN
		p.chirp[k] = cmplx.Rect(1, -math.Pi*float64(kk)/float64(n))
	}

	filter := make([]complex128, m)
	filter[0] = cmplx.Conj(p.chirp[0])
	for k := 1; k < n; k++ {
		c := cmplx.Conj(p.chirp[k])
		filter[k] = c
		filter[m-k] = c
	}
	p.filterF = make([]complex128, m)
	if err := plan.Forward(p.filterF, filter); err != nil {
		return nil, fmt.Errorf("dft: chirp filter transform: %w", err)
	}

	p.work = make([]complex128, m)
	p.workF = make([]complex128, m)
	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int {
	return p.n
}

// Forward computes dst[k] = sum_j src[j] * exp(-2*pi*i*j*k/n).
func (p *Plan) Forward(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("%w: plan %d, dst %d, src %d", ErrLengthMismatch, p.n, len(dst), len(src))
	}

	switch {
	case p.n == 1:
		dst[0] = src[0]
		return nil
	case p.direct != nil:
		return p.direct.Forward(dst, src)
	default:
		return p.bluestein(dst, src)
	}
}

// Inverse computes the normalized inverse transform of src into dst.
func (p *Plan) Inverse(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("%w: plan %d, dst %d, src %d", ErrLengthMismatch, p.n, len(dst), len(src))
	}

	switch {
	case p.n == 1:
		dst[0] = src[0]
		return nil
	case p.direct != nil:
		return p.direct.Inverse(dst, src)
	}

	// ifft(x) = conj(fft(conj(x))) / n
	tmp := make([]complex128, p.n)
	for i, v := range src {
		tmp[i] = cmplx.Conj(v)
	}
	if err := p.bluestein(dst, tmp); err != nil {
		return err
	}
	scale := 1 / float64(p.n)
	for i, v := range dst {
		dst[i] = complex(real(v)*scale, -imag(v)*scale)
	}
	return nil
}

func (p *Plan) bluestein(dst, src []complex128) error {
	for i := range p.work {
		p.work[i] = 0
	}
	for k, v := range src {
		p.work[k] = v * p.chirp[k]
	}

	if err := p.padded.Forward(p.workF, p.work); err != nil {
		return err
	}
	for i := range p.workF {
		p.workF[i] *= p.filterF[i]
	}
	if err := p.padded.Inverse(p.work, p.workF); err != nil {
		return err
	}

	for k := range dst {
		dst[k] = p.work[k] * p.chirp[k]
	}
	return nil
}

// Forward is a one-shot convenience wrapper around [NewPlan] and [Plan.Forward].
func Forward(src []complex128) ([]complex128, error) {
	p, err := NewPlan(len(src))
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(src))
	if err := p.Forward(out, src); err != nil {
		return nil, err
	}
	return out, nil
}

// Inverse is a one-shot convenience wrapper around [NewPlan] and [Plan.Inverse].
func Inverse(src []complex128) ([]complex128, error) {
	p, err := NewPlan(len(src))
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(src))
	if err := p.Inverse(out, src); err != nil {
		return nil, err
	}
	return out, nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
