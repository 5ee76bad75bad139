package spectrum

import (
	"math/rand"
	"strconv"
	"testing"
)

func BenchmarkPower(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14} {
		bins := make([]complex128, n)
		for i := range bins {
			bins[i] = complex(float64(i%7), float64(n-i)/float64(n))
		}
		b.Run(sizeName(n), func(b *testing.B) {
			b.SetBytes(int64(n * 16))
			for range b.N {
				_ = Power(bins)
			}
		})
	}
}

func BenchmarkWelch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := make([]float64, 36000)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	b.ResetTimer()
	for range b.N {
		if _, _, err := Welch(x, 0.1, WithSegmentLength(4096)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSmoothFractionalOctaveLog(b *testing.B) {
	freqs, err := RFFTFreq(1<<14, 0.1)
	if err != nil {
		b.Fatal(err)
	}
	freqs = freqs[1:]
	vals := make([]float64, len(freqs))
	for i, f := range freqs {
		vals[i] = 1e-15 / (f * f)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := SmoothFractionalOctaveLog(freqs, vals, 8); err != nil {
			b.Fatal(err)
		}
	}
}

func sizeName(n int) string {
	if n%1024 == 0 {
		return strconv.Itoa(n/1024) + "K"
	}
	return strconv.Itoa(n)
}
