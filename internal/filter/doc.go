// Package filter provides the numeric building blocks of the software
// post-processing stages.
//
// All functions operate on linear float RGBA values so that over-bright
// (HDR) values survive until tone mapping:
//   - Gaussian kernels, cached by kernel width
//   - Color matrix transformations (contrast, saturation, brightness)
//   - Luminance and tone curves
package filter
