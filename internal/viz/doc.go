// Package viz turns kernel rows into a scrolling grayscale heatmap.
//
//   - [Heatmap]: RGBA pixel buffer with gray written to R, G and B
//   - [Normalize]: per-row scaling of intensities onto 0..255
//   - [Renderer]: shift, advance time, evaluate, normalize, write
//
// Text front ends use [Downsample] and [ShadeRune] to fit the buffer into a
// terminal.
package viz
