// Package physics provides the double-slit interference kernel.
//
// The kernel is a pure function of five numbers and never touches display
// state, so it can be called from any goroutine:
//
//	i := physics.Intensity(0.3, 0.7, 0.5, 1.0, 10.0)
//
// [FillRow] evaluates a whole screen row for one parameter set, optionally
// in parallel.
//
// # Regularization
//
// Each per-slit amplitude divides by d+[Epsilon], where d is the distance
// between slit and screen coordinate. Epsilon bounds the amplitude at 1/ε
// directly under a slit.
package physics
