// Package interp resamples sparse reference curves onto arbitrary query grids.
//
// Two modes are available:
//
//   - [Linear]: piecewise-linear in (x, y) with flat extrapolation
//   - [LogLog]: piecewise-linear in (log10 x, log10 y), suited to curves that
//     are piecewise power laws such as instrument self-noise spectra
//
// Reference nodes must be sorted ascending. Caller slices are never modified.
package interp
