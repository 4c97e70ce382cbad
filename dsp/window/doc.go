// Package window generates tapering windows for spectral measurements of
// filtered trajectories.
package window
