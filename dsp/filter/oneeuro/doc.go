// Package oneeuro implements the One Euro filter, an adaptive low-pass filter
// for noisy per-frame signals such as tracked positions and rotations.
//
// The filter lowers its cutoff frequency while the signal moves slowly, which
// suppresses jitter, and raises it as the signal speeds up, which reduces lag.
// Tuning happens through three parameters bundled in Params:
//   - MinCutoff: cutoff in Hz used when the signal is at rest.
//   - Beta: how strongly speed raises the cutoff.
//   - DerivativeCutoff: cutoff in Hz for the speed estimate itself.
//
// Filter smooths one scalar channel. Multi applies independent scalar filters
// to every component of a composite value; NewVec2, NewVec3, NewVec4 and
// NewQuat build Multi filters for mathgl vectors and quaternions.
//
// Filters are stateful, deterministic and owned by a single caller. A time
// step of zero or less holds the last output without touching the history,
// so paused frames are harmless.
package oneeuro
