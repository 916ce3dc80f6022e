// Package analysis inspects intensity rows after they are computed.
//
// Fringe analysis locates local maxima and compares their spacing with the
// intensity period π/k implied by the wavelength 2π/k. Spectral analysis
// takes the FFT of a row (or a window of it) to find the dominant spatial
// frequency.
package analysis
