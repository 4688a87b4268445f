package step

import "errors"

// ErrAlreadyFinalized is returned by Snapshot when a Computation or
// Generator has already produced its terminal result (or exhausted its
// sequence) and there is no live state left to serialise.
var ErrAlreadyFinalized = errors.New("step: already finalized, nothing to snapshot")
