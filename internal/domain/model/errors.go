package model

import "errors"

// ErrDegenerateEvent marks an event whose record cannot be scored.
var ErrDegenerateEvent = errors.New("degenerate event")
