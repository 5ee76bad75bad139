package inject_test

import (
	"fmt"

	"github.com/cwbudde/algo-seisnoise/dsp/noise"
	"github.com/cwbudde/algo-seisnoise/seismic/inject"
	"github.com/cwbudde/algo-seisnoise/seismic/model"
)

func ExampleInjector_AddNoise() {
	inj := inject.NewInjector(inject.WithSynthesizer(noise.NewSynthesizer(noise.WithSeed(1))))

	traces := []*inject.Trace{
		{Channel: "BHZ", Delta: 0.05, Data: make([]float64, 1200)},
		{Channel: "BHN", Delta: 0.05, Data: make([]float64, 1200)},
	}
	if _, err := inj.AddNoise(traces, inject.Request{Model: "NLNM", Kind: model.Velocity}); err != nil {
		panic(err)
	}
	fmt.Println(len(traces[0].Data), traces[0].Data[0] != 0)

	// Output:
	// 1200 true
}
