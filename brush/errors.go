// Package brush implements the stroke state machine, dab rasteriser, and
// per-dab sampler (smudge pickup, HSV color drift, jitter) that together
// turn a sequence of input device events into painted dabs on a
// tile.Manager (or any equivalent Surface).
package brush

import "errors"

// ErrNoSurface is returned by every stroke operation when no Surface has
// been attached via New or SetSurface.
var ErrNoSurface = errors.New("brush: no surface set")

// ErrInvariant reports an internal consistency failure. No code path in
// this package returns it.
var ErrInvariant = errors.New("brush: internal invariant violated")
