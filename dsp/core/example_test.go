package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-seisnoise/dsp/core"
)

func ExampleDBPowerToLinear() {
	fmt.Printf("%.0e %.1f\n", core.DBPowerToLinear(-150), core.LinearPowerToDB(1e-15))

	// Output:
	// 1e-15 -150.0
}
