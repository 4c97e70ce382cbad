// Package lowpass provides a single-pole exponential low-pass filter for
// scalar streams whose smoothing factor is supplied per sample.
//
// The filter seeds itself with the first input so there is no start-up lag.
// Alpha converts an update rate and a cutoff frequency into the smoothing
// factor of the equivalent discretized RC stage.
package lowpass
