// Command seisnoise synthesizes seismic instrument self-noise.
//
// Usage:
//
//	seisnoise [command] [flags]
//
// Examples:
//
//	seisnoise models
//	seisnoise generate --model NLNM --channel BHZ --kind velocity --npts 36000
//	seisnoise psd --model NHNM --component horizontal --realizations 20
//	seisnoise windows --size 16384
//
// Every flag can also be set through a SEISNOISE_<FLAG> environment
// variable, with dashes replaced by underscores.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
