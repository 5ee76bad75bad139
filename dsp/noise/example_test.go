package noise_test

import (
	"fmt"

	"github.com/cwbudde/algo-seisnoise/dsp/noise"
)

func ExampleSynthesizer_Synthesize() {
	s := noise.NewSynthesizer(noise.WithSeed(1))
	x, err := s.Synthesize(0.1, 600, []float64{0.01, 1, 5}, []float64{1e-14, 1e-16, 1e-15})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(x))

	// Output:
	// 600
}
