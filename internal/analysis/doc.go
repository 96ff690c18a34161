// Package analysis inspects recorded gravity runs.
//
// The package works on frames produced by [sim.Simulator] or loaded from
// storage:
//
//   - [Column]: one field of one body as a time series
//   - [PowerSpectrum]: magnitude spectrum of a series (go-dsp FFT)
//   - [DominantFrequency]: strongest non-DC frequency of a series
//   - [GeneratePhasePortrait]: two fields of one body plotted against each other
//   - [LyapunovExponent]: divergence rate of two nearby body sets
//
// # Orbital Periods
//
// For a bound orbit the dominant frequency of a coordinate is the inverse of
// the orbital period:
//
//	xs, _ := analysis.Column(frames, 1, "x")
//	freq, _ := analysis.DominantFrequency(xs, dt)
//	period := 1 / freq
package analysis
