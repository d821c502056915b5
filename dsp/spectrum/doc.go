// Package spectrum provides helpers for complex spectrum bins produced by an
// FFT: power and kinetic-energy densities, signed frequency folding, and
// radial wave-number binning for two-dimensional spectra.
//
// The package does not compute transforms itself; see package fft2.
package spectrum
