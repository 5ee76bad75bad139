// Package model describes reference noise spectra of seismic instruments.
//
// A [Curve] is a sparse power spectral density in a physical [Unit]. A
// [Catalog] maps model names to per-component curves and ships with the
// Peterson (1993) new low and high noise models. Further instrument models
// can be registered programmatically or loaded from YAML files with
// [LoadFile] and [LoadDir]. [Convert] moves a curve between displacement,
// velocity and acceleration.
package model
