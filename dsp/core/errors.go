package core

import "errors"

// ErrConfiguration reports an invalid construction-time or per-call
// configuration: non-positive capacities, coefficient/capacity mismatches,
// or configured lengths that disagree with the buffers passed in.
//
// Packages wrap it with context, so callers should test with errors.Is.
var ErrConfiguration = errors.New("configuration error")
