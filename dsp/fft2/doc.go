// Package fft2 computes two-dimensional discrete Fourier transforms of
// row-major grids.
//
// The transform is separable: every row is transformed, then every column,
// using one-dimensional plans from the algo-fft backend. Output layout
// matches the input layout, so bin (i, j) is stored at index i*ny+j with
// the usual FFT ordering (non-negative frequencies first, then negative).
package fft2
