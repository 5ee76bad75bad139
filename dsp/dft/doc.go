// Package dft provides complex discrete Fourier transforms of arbitrary
// length on top of algo-fft plans.
//
// Power-of-two lengths use an algo-fft plan directly. Other lengths use
// Bluestein's chirp-z algorithm, which expresses the transform as a circular
// convolution evaluated with a padded power-of-two plan.
//
// Transforms follow the usual convention: Forward is unnormalized and Inverse
// scales by 1/n, so Inverse(Forward(x)) == x.
package dft
